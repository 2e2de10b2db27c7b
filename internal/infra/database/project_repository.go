package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ProjectRepository struct {
	DB       *sql.DB
	LeadRepo *LeadRepository
}

func NewProjectRepository(db *sql.DB, leadRepo *LeadRepository) *ProjectRepository {
	return &ProjectRepository{DB: db, LeadRepo: leadRepo}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (id, name, industry, location, lead_limit,
		                      must_have_website, min_rating, status,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Industry, p.Location, p.Limit,
		p.MustHaveWebsite, p.MinRating, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `
		SELECT id, name, industry, location, lead_limit, must_have_website,
		       min_rating, status, created_at, updated_at
		FROM projects WHERE id = $1
	`

	var p entity.Project
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Industry, &p.Location, &p.Limit,
		&p.MustHaveWebsite, &p.MinRating, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrProjectNotFound
		}
		return nil, err
	}

	leads, err := r.LeadRepo.FindByOwner(ctx, "project_id", p.ID)
	if err != nil {
		return nil, err
	}
	p.Leads = leads

	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	query := `
		SELECT id, name, industry, location, lead_limit, must_have_website,
		       min_rating, status, created_at, updated_at
		FROM projects ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Industry, &p.Location, &p.Limit,
			&p.MustHaveWebsite, &p.MinRating, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range projects {
		leads, err := r.LeadRepo.FindByOwner(ctx, "project_id", p.ID)
		if err != nil {
			return nil, err
		}
		p.Leads = leads
	}

	return projects, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE projects SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	return err
}

// Delete remove o projeto e os leads que ele possui (delete em cascata).
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE project_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
