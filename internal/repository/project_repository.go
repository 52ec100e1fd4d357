package repository

import (
	"context"
	"database/sql"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// ProjectRepo manages real-estate projects within a city.
type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO projects (city_id, name, address, description) VALUES (?,?,?,?)",
		p.CityID, p.Name, p.Address, nullable(p.Description))
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return classify(err)
	}
	p.ID = uint64(id)
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	var (
		p    model.Project
		desc sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, city_id, name, address, description, created_at FROM projects WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.CityID, &p.Name, &p.Address, &desc, &p.CreatedAt)
	if err != nil {
		return model.Project{}, classify(err)
	}
	p.Description = desc.String
	return p, nil
}

func (r *ProjectRepo) ListByCity(ctx context.Context, cityID uint64) ([]model.Project, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, city_id, name, address, description, created_at FROM projects WHERE city_id=? ORDER BY name",
		cityID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var (
			p    model.Project
			desc sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.CityID, &p.Name, &p.Address, &desc, &p.CreatedAt); err != nil {
			return nil, classify(err)
		}
		p.Description = desc.String
		out = append(out, p)
	}
	return out, classify(rows.Err())
}

// Update changes name, address and description in one statement.
func (r *ProjectRepo) Update(ctx context.Context, p model.Project) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE projects SET name=?, address=?, description=? WHERE id=?",
		p.Name, p.Address, nullable(p.Description), p.ID)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}

func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
	if err != nil {
		return classify(err)
	}
	return noneAffected(res)
}
