package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, project_id, contact_list_id, company_name, category, address,
	website, phone, email, email_status, ceo_name, description, notes,
	rating, review_count, source_url, status, score, confidence,
	is_enriching, last_call_result, appointment_date, created_at, updated_at
`

func (r *LeadRepository) Insert(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		nullString(l.ProjectID),
		nullString(l.ContactListID),
		l.CompanyName,
		nullString(l.Category),
		nullString(l.Address),
		nullString(l.Website),
		nullString(l.Phone),
		nullString(l.Email),
		l.EmailStatus,
		nullString(l.CEOName),
		nullString(l.Description),
		nullString(l.Notes),
		l.Rating,
		l.ReviewCount,
		nullString(l.SourceURL),
		l.Status,
		l.Score,
		l.Confidence,
		l.IsEnriching,
		nullString(l.LastCallResult),
		nullTime(l.AppointmentDate),
		l.CreatedAt,
		l.UpdatedAt,
	)

	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errors.New("lead already exists")
		}
		log.Printf("❌ Erro crítico no banco (insert lead): %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) Update(ctx context.Context, l *entity.Lead) error {
	query := `
		UPDATE leads SET
			website = $2, phone = $3, email = $4, email_status = $5,
			ceo_name = $6, description = $7, notes = $8, rating = $9,
			source_url = $10, status = $11, score = $12, confidence = $13,
			is_enriching = $14, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		nullString(l.Website),
		nullString(l.Phone),
		nullString(l.Email),
		l.EmailStatus,
		nullString(l.CEOName),
		nullString(l.Description),
		nullString(l.Notes),
		l.Rating,
		nullString(l.SourceURL),
		l.Status,
		l.Score,
		l.Confidence,
		l.IsEnriching,
	)
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	logs, err := r.findCallLogs(ctx, id)
	if err != nil {
		return nil, err
	}
	lead.CallLogs = logs

	return lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	return err
}

func (r *LeadRepository) SetEnriching(ctx context.Context, leadIDs []string, enriching bool) error {
	if len(leadIDs) == 0 {
		return nil
	}

	query := `
		UPDATE leads SET is_enriching = $1, updated_at = NOW()
		WHERE id = ANY($2)
	`
	_, err := r.DB.ExecContext(ctx, query, enriching, pq.Array(leadIDs))
	return err
}

// AppendCallLog grava o registro imutável e atualiza os campos de última
// ligação do lead na mesma transação de banco.
func (r *LeadRepository) AppendCallLog(ctx context.Context, lead *entity.Lead, cl entity.CallLog) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertLog := `
		INSERT INTO call_logs (
			id, lead_id, timestamp, outcome, notes, recording_ref, appointment,
			analysis_score, analysis_adherence, analysis_confidence,
			analysis_sentiment, analysis_takeaways
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var score, adherence interface{}
	var confidence, sentiment *string
	var takeaways interface{}
	if cl.Analysis != nil {
		score = cl.Analysis.Score
		adherence = cl.Analysis.Adherence
		confidence = &cl.Analysis.Confidence
		sentiment = &cl.Analysis.Sentiment
		takeaways = pq.Array(cl.Analysis.Takeaways)
	}

	if _, err := tx.ExecContext(ctx, insertLog,
		cl.ID,
		lead.ID,
		cl.Timestamp,
		cl.Outcome,
		nullString(cl.Notes),
		nullString(cl.RecordingRef),
		nullTime(cl.Appointment),
		score,
		adherence,
		confidence,
		sentiment,
		takeaways,
	); err != nil {
		return err
	}

	updateLead := `
		UPDATE leads SET
			status = $2, last_call_result = $3, appointment_date = $4,
			updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, updateLead,
		lead.ID,
		lead.Status,
		nullString(lead.LastCallResult),
		nullTime(lead.AppointmentDate),
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *LeadRepository) findCallLogs(ctx context.Context, leadID string) ([]entity.CallLog, error) {
	query := `
		SELECT id, timestamp, outcome, notes, recording_ref, appointment,
		       analysis_score, analysis_adherence, analysis_confidence,
		       analysis_sentiment, analysis_takeaways
		FROM call_logs
		WHERE lead_id = $1
		ORDER BY timestamp DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []entity.CallLog
	for rows.Next() {
		var cl entity.CallLog
		var notes, recordingRef, confidence, sentiment sql.NullString
		var appointment sql.NullTime
		var score, adherence sql.NullInt64
		var takeaways pq.StringArray

		if err := rows.Scan(
			&cl.ID, &cl.Timestamp, &cl.Outcome, &notes, &recordingRef,
			&appointment, &score, &adherence, &confidence, &sentiment,
			&takeaways,
		); err != nil {
			return nil, err
		}

		cl.Notes = notes.String
		cl.RecordingRef = recordingRef.String
		if appointment.Valid {
			t := appointment.Time
			cl.Appointment = &t
		}
		if score.Valid {
			cl.Analysis = &entity.CallAnalysis{
				Score:      int(score.Int64),
				Adherence:  int(adherence.Int64),
				Confidence: confidence.String,
				Sentiment:  sentiment.String,
				Takeaways:  []string(takeaways),
			}
		}

		logs = append(logs, cl)
	}

	return logs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var projectID, contactListID, category, address, website, phone sql.NullString
	var email, ceoName, description, notes, sourceURL, lastCall sql.NullString
	var appointment sql.NullTime

	err := row.Scan(
		&l.ID, &projectID, &contactListID, &l.CompanyName, &category,
		&address, &website, &phone, &email, &l.EmailStatus, &ceoName,
		&description, &notes, &l.Rating, &l.ReviewCount, &sourceURL,
		&l.Status, &l.Score, &l.Confidence, &l.IsEnriching, &lastCall,
		&appointment, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.ProjectID = projectID.String
	l.ContactListID = contactListID.String
	l.Category = category.String
	l.Address = address.String
	l.Website = website.String
	l.Phone = phone.String
	l.Email = email.String
	l.CEOName = ceoName.String
	l.Description = description.String
	l.Notes = notes.String
	l.SourceURL = sourceURL.String
	l.LastCallResult = lastCall.String
	if appointment.Valid {
		t := appointment.Time
		l.AppointmentDate = &t
	}

	return &l, nil
}

// FindByOwner carrega os leads de um projeto ou lista (uma das chaves).
func (r *LeadRepository) FindByOwner(ctx context.Context, column, ownerID string) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE ` + column + ` = $1 ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}

	return leads, rows.Err()
}

// UpsertCaptured é o caminho do formulário público de captura: atualiza por
// e-mail sem apagar dados já conhecidos.
func (r *LeadRepository) UpsertCaptured(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (id, contact_list_id, company_name, email, phone,
		                   email_status, status, score, confidence,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (email) WHERE email IS NOT NULL
		DO UPDATE SET
			company_name = COALESCE(NULLIF(EXCLUDED.company_name, ''), leads.company_name),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			updated_at = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		nullString(l.ContactListID),
		l.CompanyName,
		nullString(l.Email),
		nullString(l.Phone),
		l.EmailStatus,
		l.Status,
		l.Score,
		l.Confidence,
	)
	return err
}
