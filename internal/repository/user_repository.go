package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// UserRepo persists users, including the single refresh-token slot.  The
// refresh token lives on the user row itself: overwriting it supersedes any
// previously issued token, clearing it is logout.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `u.id, u.email, u.password_hash, u.full_name, u.phone,
	u.role_id, r.name, u.refresh_token, u.created_at, u.updated_at`

// Create inserts a user and fills in its assigned ID.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name, phone, role_id) VALUES (?,?,?,?,?)",
		email, u.PasswordHash, u.FullName, nullable(u.Phone), u.RoleID)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return classify(err)
	}
	u.ID = uint64(id)
	u.Email = email
	return nil
}

// GetByEmail fetches a user by normalized email, joining the role name.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, "u.email=?", email)
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "u.id=?", id)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (model.User, error) {
	var (
		u       model.User
		phone   sql.NullString
		refresh sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users u JOIN roles r ON r.id=u.role_id WHERE "+where+" LIMIT 1",
		arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &phone,
		&u.RoleID, &u.Role, &refresh, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, classify(err)
	}
	u.Phone = phone.String
	u.RefreshToken = refresh.String
	return u, nil
}

// UpdateProfile changes the mutable profile fields.  Empty values are
// skipped so clients can update name and phone independently.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, fullName, phone string) error {
	sets := []string{}
	args := []any{}
	if fullName != "" {
		sets = append(sets, "full_name=?")
		args = append(args, fullName)
	}
	if phone != "" {
		sets = append(sets, "phone=?")
		args = append(args, phone)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return classify(err)
}

// SetRefreshToken overwrites the refresh-token slot.  Last write wins when
// concurrent logins race; the stored value defines the one valid session.
func (r *UserRepo) SetRefreshToken(ctx context.Context, id uint64, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=? WHERE id=?", token, id)
	return classify(err)
}

// ClearRefreshToken empties the slot, revoking the active session.
func (r *UserRepo) ClearRefreshToken(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=NULL WHERE id=?", id)
	return classify(err)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
