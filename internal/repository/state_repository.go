package repository

import (
	"context"
	"database/sql"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// StateRepo manages states within a country.
type StateRepo struct{ DB *sql.DB }

func NewStateRepo(db *sql.DB) *StateRepo { return &StateRepo{DB: db} }

func (r *StateRepo) Create(ctx context.Context, s *model.State) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO states (country_id, name) VALUES (?,?)", s.CountryID, s.Name)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return classify(err)
	}
	s.ID = uint64(id)
	return nil
}

func (r *StateRepo) GetByID(ctx context.Context, id uint64) (model.State, error) {
	var s model.State
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, country_id, name, created_at FROM states WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.CountryID, &s.Name, &s.CreatedAt)
	if err != nil {
		return model.State{}, classify(err)
	}
	return s, nil
}

func (r *StateRepo) ListByCountry(ctx context.Context, countryID uint64) ([]model.State, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, country_id, name, created_at FROM states WHERE country_id=? ORDER BY name",
		countryID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.State{}
	for rows.Next() {
		var s model.State
		if err := rows.Scan(&s.ID, &s.CountryID, &s.Name, &s.CreatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, s)
	}
	return out, classify(rows.Err())
}

func (r *StateRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE states SET name=? WHERE id=?", name, id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}

func (r *StateRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM states WHERE id=?", id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}
