package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ScriptRepository struct {
	DB *sql.DB
}

func NewScriptRepository(db *sql.DB) *ScriptRepository {
	return &ScriptRepository{DB: db}
}

func (r *ScriptRepository) Create(ctx context.Context, s *entity.Script) error {
	query := `
		INSERT INTO scripts (id, name, goal, tone, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.Name, nullString(s.Goal), nullString(s.Tone), s.Content,
		s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *ScriptRepository) Update(ctx context.Context, s *entity.Script) error {
	query := `
		UPDATE scripts SET name = $2, goal = $3, tone = $4, content = $5,
		                   updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.Name, nullString(s.Goal), nullString(s.Tone), s.Content,
	)
	return err
}

func (r *ScriptRepository) FindByID(ctx context.Context, id string) (*entity.Script, error) {
	query := `SELECT id, name, goal, tone, content, created_at, updated_at FROM scripts WHERE id = $1`

	var s entity.Script
	var goal, tone sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &goal, &tone, &s.Content, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrScriptNotFound
		}
		return nil, err
	}

	s.Goal = goal.String
	s.Tone = tone.String
	return &s, nil
}

func (r *ScriptRepository) List(ctx context.Context) ([]*entity.Script, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, goal, tone, content, created_at, updated_at FROM scripts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scripts []*entity.Script
	for rows.Next() {
		var s entity.Script
		var goal, tone sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &goal, &tone, &s.Content, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Goal = goal.String
		s.Tone = tone.String
		scripts = append(scripts, &s)
	}

	return scripts, rows.Err()
}

func (r *ScriptRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM scripts WHERE id = $1`, id)
	return err
}
