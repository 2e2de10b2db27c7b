package usecase

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

// Tamanho fixo do lote: 5 chamadas simultâneas, barreira total entre lotes.
const enrichBatchSize = 5

// EnrichLeadsUseCase roda a pipeline de enriquecimento em lotes.
//
// Regras:
//   - todos os leads alvo entram "in-flight" antes do primeiro lote;
//   - dentro do lote as chamadas saem em paralelo e o lote seguinte só
//     começa depois que todas voltam;
//   - falha é isolada por lead: o lead mantém os valores de antes da
//     chamada e só perde a flag in-flight;
//   - cada rodada carrega um número de geração por projeto; resultado de
//     rodada substituída é descartado antes do merge;
//   - status do projeto vira COMPLETED quando nenhum lead está in-flight.
type EnrichLeadsUseCase struct {
	ProjectRepo ProjectRepositoryInterface
	LeadRepo    LeadRepositoryInterface
	Enricher    LeadEnricher

	BatchSize int

	mu          sync.Mutex
	generations map[string]uint64          // projectID -> geração corrente
	claims      map[string]map[string]bool // projectID -> leads in-flight da rodada corrente
}

func NewEnrichLeadsUseCase(
	projectRepo ProjectRepositoryInterface,
	leadRepo LeadRepositoryInterface,
	enricher LeadEnricher,
) *EnrichLeadsUseCase {
	return &EnrichLeadsUseCase{
		ProjectRepo: projectRepo,
		LeadRepo:    leadRepo,
		Enricher:    enricher,
		BatchSize:   enrichBatchSize,
		generations: make(map[string]uint64),
		claims:      make(map[string]map[string]bool),
	}
}

func (uc *EnrichLeadsUseCase) Execute(ctx context.Context, input EnrichLeadsInput) (*EnrichLeadsOutput, error) {
	project, err := uc.ProjectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, &DomainError{Code: "PROJECT_NOT_FOUND", Message: "projeto inválido: " + err.Error()}
	}

	targets := uc.selectTargets(project, input.LeadIDs)
	if len(targets) == 0 {
		return &EnrichLeadsOutput{Status: project.Status}, nil
	}

	// Marca tudo in-flight antes do primeiro lote, para a UI mostrar
	// progresso desde já.
	ids := make([]string, len(targets))
	for i, l := range targets {
		l.IsEnriching = true
		ids[i] = l.ID
	}
	gen := uc.nextGeneration(project.ID, ids...)
	if err := uc.LeadRepo.SetEnriching(ctx, ids, true); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if err := uc.ProjectRepo.UpdateStatus(ctx, project.ID, entity.ProjectStatusEnriching); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	middleware.AddEnrichmentInflight(float64(len(targets)))

	enriched, failed := 0, 0

	for start := 0; start < len(targets); start += uc.BatchSize {
		end := start + uc.BatchSize
		if end > len(targets) {
			end = len(targets)
		}
		batch := targets[start:end]

		results := make([]entity.EnrichmentResult, len(batch))
		failures := make([]error, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, lead := range batch {
			g.Go(func() error {
				res, err := uc.Enricher.EnrichLead(gctx, lead)
				if err != nil {
					// Isolado por lead: registra e segue o lote.
					failures[i] = err
					return nil
				}
				results[i] = res
				return nil
			})
		}
		// Barreira: nada do próximo lote sai antes de todo este voltar.
		_ = g.Wait()

		if uc.superseded(project.ID, gen) {
			// Outra rodada começou; este resultado está velho. Não faz
			// merge nenhum, só solta as flags que a rodada nova não
			// reclamou (as dela são responsabilidade dela).
			if stale := uc.unclaimed(project.ID, ids[start:]); len(stale) > 0 {
				_ = uc.LeadRepo.SetEnriching(ctx, stale, false)
			}
			middleware.AddEnrichmentInflight(-float64(len(targets) - start))
			log.Printf("⚠️ Rodada de enriquecimento substituída no projeto %s, descartando lote", project.ID)
			return &EnrichLeadsOutput{Enriched: enriched, Failed: failed, Skipped: true, Status: entity.ProjectStatusEnriching}, nil
		}

		// Publica o estado parcial: merge + recomputo + flag limpa, lead a
		// lead, para a UI acompanhar lote a lote.
		for i, lead := range batch {
			lead.IsEnriching = false
			if failures[i] != nil {
				failed++
				middleware.RecordLeadEnriched("failed")
				log.Printf("❌ Enriquecimento falhou para '%s': %v", lead.CompanyName, failures[i])
			} else {
				lead.ApplyEnrichment(results[i])
				enriched++
				middleware.RecordLeadEnriched("ok")
			}
			if err := uc.LeadRepo.Update(ctx, lead); err != nil {
				log.Printf("❌ Falha ao salvar lead %s: %v", lead.ID, err)
			}
		}
		middleware.AddEnrichmentInflight(-float64(len(batch)))
	}

	status := entity.ProjectStatusEnriching
	if !project.AnyEnriching() {
		status = entity.ProjectStatusCompleted
	}
	if err := uc.ProjectRepo.UpdateStatus(ctx, project.ID, status); err != nil {
		log.Printf("❌ Falha ao atualizar status do projeto %s: %v", project.ID, err)
	}

	log.Printf("✨ Enriquecimento do projeto %s: %d ok, %d falhas", project.ID, enriched, failed)

	return &EnrichLeadsOutput{Enriched: enriched, Failed: failed, Status: status}, nil
}

// RunEnrichment é a forma que o worker da fila consome: mesma pipeline,
// assinatura achatada.
func (uc *EnrichLeadsUseCase) RunEnrichment(ctx context.Context, projectID string, leadIDs []string) error {
	_, err := uc.Execute(ctx, EnrichLeadsInput{ProjectID: projectID, LeadIDs: leadIDs})
	return err
}

// selectTargets resolve os leads alvo dentro do projeto. IDs de fora do
// projeto são ignorados (o chamador só pode enriquecer o que possui).
func (uc *EnrichLeadsUseCase) selectTargets(project *entity.Project, leadIDs []string) []*entity.Lead {
	if len(leadIDs) == 0 {
		return project.Leads
	}

	wanted := make(map[string]bool, len(leadIDs))
	for _, id := range leadIDs {
		wanted[id] = true
	}

	var targets []*entity.Lead
	for _, l := range project.Leads {
		if wanted[l.ID] {
			targets = append(targets, l)
		}
	}
	return targets
}

// nextGeneration abre uma rodada nova para o projeto e registra quais leads
// ela reclamou. Flags in-flight pertencem sempre à rodada corrente.
func (uc *EnrichLeadsUseCase) nextGeneration(projectID string, leadIDs ...string) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.generations[projectID]++
	claimed := make(map[string]bool, len(leadIDs))
	for _, id := range leadIDs {
		claimed[id] = true
	}
	uc.claims[projectID] = claimed
	return uc.generations[projectID]
}

// unclaimed filtra os IDs que a rodada corrente do projeto não marcou.
func (uc *EnrichLeadsUseCase) unclaimed(projectID string, leadIDs []string) []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	owned := uc.claims[projectID]
	var out []string
	for _, id := range leadIDs {
		if !owned[id] {
			out = append(out, id)
		}
	}
	return out
}

func (uc *EnrichLeadsUseCase) superseded(projectID string, gen uint64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.generations[projectID] != gen
}
