package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// EnrichmentReaper limpa leads presos com a flag in-flight: enriquecimento
// não tem cancelamento, então um processo que morre no meio de um lote
// deixaria a flag ligada para sempre. O reaper solta a flag depois de uma
// janela e fecha projetos que ficaram sem nada em voo.
type EnrichmentReaper struct {
	db           *sql.DB
	stuckWindow  time.Duration
	tickInterval time.Duration
}

func NewEnrichmentReaper(db *sql.DB) *EnrichmentReaper {
	return &EnrichmentReaper{
		db:           db,
		stuckWindow:  15 * time.Minute,
		tickInterval: 1 * time.Minute,
	}
}

func (w *EnrichmentReaper) Start(ctx context.Context) {
	log.Println("🕒 Enrichment Reaper iniciado (15min window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.reap(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Enrichment Reaper encerrado")
			return
		case <-ticker.C:
			w.reap(ctx)
		}
	}
}

func (w *EnrichmentReaper) reap(ctx context.Context) {
	query := `
		UPDATE leads
		SET is_enriching = FALSE, updated_at = NOW()
		WHERE is_enriching = TRUE
		  AND updated_at < NOW() - INTERVAL '15 minutes'
		RETURNING id, project_id
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao buscar leads presos: %v", err)
		return
	}
	defer rows.Close()

	reaped := 0
	for rows.Next() {
		var leadID string
		var projectID sql.NullString
		if err := rows.Scan(&leadID, &projectID); err != nil {
			log.Printf("❌ Erro ao ler lead preso: %v", err)
			return
		}
		reaped++
	}
	if err := rows.Err(); err != nil {
		log.Printf("❌ Erro ao varrer leads presos: %v", err)
		return
	}

	if reaped == 0 {
		return
	}

	// Projetos ENRICHING sem nenhum lead em voo viram COMPLETED.
	complete := `
		UPDATE projects p
		SET status = 'COMPLETED', updated_at = NOW()
		WHERE p.status = 'ENRICHING'
		  AND NOT EXISTS (
			SELECT 1 FROM leads l
			WHERE l.project_id = p.id AND l.is_enriching = TRUE
		  )
	`
	if _, err := w.db.ExecContext(ctx, complete); err != nil {
		log.Printf("❌ Erro ao fechar projetos: %v", err)
		return
	}

	log.Printf("🧹 Reaper soltou %d leads presos em enriquecimento", reaped)
}
