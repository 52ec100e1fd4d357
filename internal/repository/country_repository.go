package repository

import (
	"context"
	"database/sql"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// CountryRepo manages rows at the top of the catalog hierarchy.
type CountryRepo struct{ DB *sql.DB }

func NewCountryRepo(db *sql.DB) *CountryRepo { return &CountryRepo{DB: db} }

func (r *CountryRepo) Create(ctx context.Context, c *model.Country) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO countries (name) VALUES (?)", c.Name)
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

func (r *CountryRepo) GetByID(ctx context.Context, id uint64) (model.Country, error) {
	var c model.Country
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM countries WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return model.Country{}, classify(err)
	}
	return c, nil
}

func (r *CountryRepo) List(ctx context.Context) ([]model.Country, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at FROM countries ORDER BY name")
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.Country{}
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, c)
	}
	return out, classify(rows.Err())
}

func (r *CountryRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE countries SET name=? WHERE id=?", name, id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}

// Delete removes a country; FK restrictions surface as ErrConflict when
// states still reference it.
func (r *CountryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM countries WHERE id=?", id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}

// noneAffected converts a zero-row result into ErrNotFound.
func noneAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
