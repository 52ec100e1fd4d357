package repository

import (
	"context"
	"database/sql"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// ClientRepo manages client records and their unit-view history.
type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clients (full_name, email, phone) VALUES (?,?,?)",
		c.FullName, nullable(c.Email), nullable(c.Phone))
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return classify(err)
	}
	c.ID = uint64(id)
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
	var (
		c            model.Client
		email, phone sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, full_name, email, phone, created_at FROM clients WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.FullName, &email, &phone, &c.CreatedAt)
	if err != nil {
		return model.Client{}, classify(err)
	}
	c.Email = email.String
	c.Phone = phone.String
	return c, nil
}

func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, full_name, email, phone, created_at FROM clients ORDER BY full_name")
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.Client{}
	for rows.Next() {
		var (
			c            model.Client
			email, phone sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.FullName, &email, &phone, &c.CreatedAt); err != nil {
			return nil, classify(err)
		}
		c.Email = email.String
		c.Phone = phone.String
		out = append(out, c)
	}
	return out, classify(rows.Err())
}

func (r *ClientRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM clients WHERE id=?", id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}

// RecordView inserts a view row linking a client to a unit variant.  A
// missing client or unit surfaces as ErrNotFound via the FK check.
func (r *ClientRepo) RecordView(ctx context.Context, v *model.ClientView) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO client_views (client_id, unit_variant_id, viewed_at) VALUES (?,?,?)",
		v.ClientID, v.UnitVariantID, v.ViewedAt)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return classify(err)
	}
	v.ID = uint64(id)
	return nil
}

// ListViews returns a client's view history, newest first.
func (r *ClientRepo) ListViews(ctx context.Context, clientID uint64) ([]model.ClientView, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, client_id, unit_variant_id, viewed_at FROM client_views WHERE client_id=? ORDER BY viewed_at DESC",
		clientID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.ClientView{}
	for rows.Next() {
		var v model.ClientView
		if err := rows.Scan(&v.ID, &v.ClientID, &v.UnitVariantID, &v.ViewedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, v)
	}
	return out, classify(rows.Err())
}
