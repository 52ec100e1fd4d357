package repository

import (
	"context"
	"database/sql"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// CityRepo manages cities within a state.
type CityRepo struct{ DB *sql.DB }

func NewCityRepo(db *sql.DB) *CityRepo { return &CityRepo{DB: db} }

func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO cities (state_id, name) VALUES (?,?)", c.StateID, c.Name)
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

func (r *CityRepo) GetByID(ctx context.Context, id uint64) (model.City, error) {
	var c model.City
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, state_id, name, created_at FROM cities WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.StateID, &c.Name, &c.CreatedAt)
	if err != nil {
		return model.City{}, classify(err)
	}
	return c, nil
}

func (r *CityRepo) ListByState(ctx context.Context, stateID uint64) ([]model.City, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, state_id, name, created_at FROM cities WHERE state_id=? ORDER BY name",
		stateID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.City{}
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.StateID, &c.Name, &c.CreatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, c)
	}
	return out, classify(rows.Err())
}

func (r *CityRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cities SET name=? WHERE id=?", name, id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}

func (r *CityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM cities WHERE id=?", id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}
