package repository

import (
	"context"
	"database/sql"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// UnitRepo manages unit variants offered within a project.
type UnitRepo struct{ DB *sql.DB }

func NewUnitRepo(db *sql.DB) *UnitRepo { return &UnitRepo{DB: db} }

const unitColumns = "id, project_id, name, bedrooms, bathrooms, area_sqft, price_cents, created_at"

func (r *UnitRepo) Create(ctx context.Context, u *model.UnitVariant) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO unit_variants (project_id, name, bedrooms, bathrooms, area_sqft, price_cents) VALUES (?,?,?,?,?,?)",
		u.ProjectID, u.Name, u.Bedrooms, u.Bathrooms, u.AreaSqft, u.PriceCents)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return classify(err)
	}
	u.ID = uint64(id)
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id uint64) (model.UnitVariant, error) {
	var u model.UnitVariant
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+unitColumns+" FROM unit_variants WHERE id=? LIMIT 1", id).
		Scan(&u.ID, &u.ProjectID, &u.Name, &u.Bedrooms, &u.Bathrooms,
			&u.AreaSqft, &u.PriceCents, &u.CreatedAt)
	if err != nil {
		return model.UnitVariant{}, classify(err)
	}
	return u, nil
}

func (r *UnitRepo) ListByProject(ctx context.Context, projectID uint64) ([]model.UnitVariant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+unitColumns+" FROM unit_variants WHERE project_id=? ORDER BY name", projectID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.UnitVariant{}
	for rows.Next() {
		var u model.UnitVariant
		if err := rows.Scan(&u.ID, &u.ProjectID, &u.Name, &u.Bedrooms, &u.Bathrooms,
			&u.AreaSqft, &u.PriceCents, &u.CreatedAt); err != nil {
			return nil, classify(err)
		}
		out = append(out, u)
	}
	return out, classify(rows.Err())
}

func (r *UnitRepo) Update(ctx context.Context, u model.UnitVariant) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE unit_variants SET name=?, bedrooms=?, bathrooms=?, area_sqft=?, price_cents=? WHERE id=?",
		u.Name, u.Bedrooms, u.Bathrooms, u.AreaSqft, u.PriceCents, u.ID)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}

func (r *UnitRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM unit_variants WHERE id=?", id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}
