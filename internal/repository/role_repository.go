package repository

import (
	"context"
	"database/sql"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// RoleRepo manages the fixed role set.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// EnsureRoles idempotently creates each named role.  Existing names are
// left untouched, so it is safe to run on every startup.
func (r *RoleRepo) EnsureRoles(ctx context.Context, names ...string) error {
	for _, name := range names {
		_, err := r.DB.ExecContext(ctx,
			"INSERT INTO roles (name) VALUES (?) ON DUPLICATE KEY UPDATE name=name", name)
		if err != nil {
			return classify(err)
		}
	}
	return nil
}

// GetByName looks up a role by its unique name.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE name=? LIMIT 1", name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		return model.Role{}, classify(err)
	}
	return role, nil
}
