package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ContactListRepository struct {
	DB       *sql.DB
	LeadRepo *LeadRepository
}

func NewContactListRepository(db *sql.DB, leadRepo *LeadRepository) *ContactListRepository {
	return &ContactListRepository{DB: db, LeadRepo: leadRepo}
}

func (r *ContactListRepository) Create(ctx context.Context, cl *entity.ContactList) error {
	query := `
		INSERT INTO contact_lists (id, name, stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, cl.ID, cl.Name, cl.Stage, cl.CreatedAt, cl.UpdatedAt)
	return err
}

func (r *ContactListRepository) FindByID(ctx context.Context, id string) (*entity.ContactList, error) {
	query := `SELECT id, name, stage, created_at, updated_at FROM contact_lists WHERE id = $1`

	var cl entity.ContactList
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&cl.ID, &cl.Name, &cl.Stage, &cl.CreatedAt, &cl.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrContactListNotFound
		}
		return nil, err
	}

	leads, err := r.LeadRepo.FindByOwner(ctx, "contact_list_id", cl.ID)
	if err != nil {
		return nil, err
	}
	cl.Leads = leads

	return &cl, nil
}

func (r *ContactListRepository) List(ctx context.Context) ([]*entity.ContactList, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, stage, created_at, updated_at FROM contact_lists ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*entity.ContactList
	for rows.Next() {
		var cl entity.ContactList
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Stage, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, &cl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, cl := range lists {
		leads, err := r.LeadRepo.FindByOwner(ctx, "contact_list_id", cl.ID)
		if err != nil {
			return nil, err
		}
		cl.Leads = leads
	}

	return lists, nil
}

func (r *ContactListRepository) UpdateStage(ctx context.Context, id, stage string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE contact_lists SET stage = $2, updated_at = NOW() WHERE id = $1`,
		id, stage,
	)
	return err
}

func (r *ContactListRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE contact_list_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contact_lists WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
