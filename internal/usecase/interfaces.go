package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type ProjectRepositoryInterface interface {
	Create(ctx context.Context, p *entity.Project) error
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type LeadRepositoryInterface interface {
	Insert(ctx context.Context, lead *entity.Lead) error
	Update(ctx context.Context, lead *entity.Lead) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	Delete(ctx context.Context, id string) error

	// SetEnriching liga/desliga a flag transiente em lote.
	SetEnriching(ctx context.Context, leadIDs []string, enriching bool) error

	// AppendCallLog grava o registro imutável e atualiza os campos de última
	// ligação do lead na mesma transação.
	AppendCallLog(ctx context.Context, lead *entity.Lead, log entity.CallLog) error
}

type ContactListRepositoryInterface interface {
	Create(ctx context.Context, cl *entity.ContactList) error
	FindByID(ctx context.Context, id string) (*entity.ContactList, error)
	List(ctx context.Context) ([]*entity.ContactList, error)
	UpdateStage(ctx context.Context, id, stage string) error
	Delete(ctx context.Context, id string) error
}

type ScriptRepositoryInterface interface {
	Create(ctx context.Context, s *entity.Script) error
	Update(ctx context.Context, s *entity.Script) error
	FindByID(ctx context.Context, id string) (*entity.Script, error)
	List(ctx context.Context) ([]*entity.Script, error)
	Delete(ctx context.Context, id string) error
}

// BusinessSearcher é a busca externa de empresas (IA). Pode devolver menos
// que limit; quem chama deduplica e aplica pós-filtros.
type BusinessSearcher interface {
	SearchBusinesses(ctx context.Context, industry, location string, limit int, excludeNames []string) ([]SearchResult, error)
}

// LeadEnricher é best-effort: resultado vazio em falha, nunca deve derrubar
// a pipeline (o chamador ainda isola erro por lead).
type LeadEnricher interface {
	EnrichLead(ctx context.Context, lead *entity.Lead) (entity.EnrichmentResult, error)
}

type CallAnalyzer interface {
	AnalyzeCall(ctx context.Context, outcome, leadName string) (*entity.CallAnalysis, error)
}

type ScriptGenerator interface {
	GenerateScript(ctx context.Context, goal, tone string) (string, error)
}

type EmailService interface {
	SendLeadInfo(to, leadName, myCompany string) error
}

type QueueProducerInterface interface {
	PublishEnrichmentJob(ctx context.Context, payload queue.EnrichmentJob) error
}
