package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type CreateProjectUseCase struct {
	ProjectRepo ProjectRepositoryInterface
	LeadRepo    LeadRepositoryInterface
	Searcher    BusinessSearcher
}

func NewCreateProjectUseCase(
	projectRepo ProjectRepositoryInterface,
	leadRepo LeadRepositoryInterface,
	searcher BusinessSearcher,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		ProjectRepo: projectRepo,
		LeadRepo:    leadRepo,
		Searcher:    searcher,
	}
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {
	validationErrors := ValidateCreateProjectInput(input)
	if len(validationErrors) > 0 {
		return nil, validationFailed(validationErrors)
	}

	project, err := entity.NewProject(input.Name, input.Industry, input.Location, input.Limit)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_PROJECT", Message: err.Error()}
	}
	project.MustHaveWebsite = input.MustHaveWebsite
	project.MinRating = input.MinRating
	project.Status = entity.ProjectStatusFetching

	results, err := uc.Searcher.SearchBusinesses(ctx, project.Industry, project.Location, project.Limit, nil)
	if err != nil {
		// Busca é best-effort: projeto nasce vazio em vez de abortar.
		log.Printf("⚠️ Busca de empresas falhou para '%s': %v", project.Name, err)
		results = nil
	}

	leads := buildLeads(project, results)
	project.Leads = leads
	project.Status = entity.ProjectStatusCompleted
	project.UpdatedAt = time.Now()

	txn := NewTransaction()

	txn.AddOperation("create_project", func(ctx context.Context) error {
		return uc.ProjectRepo.Create(ctx, project)
	})

	txn.AddCompensation("delete_project", func(ctx context.Context) error {
		return uc.ProjectRepo.Delete(ctx, project.ID)
	})

	txn.AddOperation("insert_leads", func(ctx context.Context) error {
		for _, l := range leads {
			if err := uc.LeadRepo.Insert(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist project and leads: " + err.Error(),
		}
	}

	log.Printf("🔎 Projeto '%s' criado com %d leads (%s / %s)", project.Name, len(leads), project.Industry, project.Location)

	return &CreateProjectOutput{
		ID:        project.ID,
		Name:      project.Name,
		Status:    project.Status,
		LeadCount: len(leads),
		Msg:       "Projeto criado com sucesso!",
	}, nil
}

// LoadMore busca mais empresas para um projeto existente, excluindo os nomes
// já presentes. Nunca introduz duplicata case-insensitive.
func (uc *CreateProjectUseCase) LoadMore(ctx context.Context, input LoadMoreInput) (*LoadMoreOutput, error) {
	project, err := uc.ProjectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, &DomainError{Code: "PROJECT_NOT_FOUND", Message: "projeto inválido: " + err.Error()}
	}

	limit := input.Limit
	if limit <= 0 {
		limit = project.Limit
	}

	results, err := uc.Searcher.SearchBusinesses(ctx, project.Industry, project.Location, limit, project.LeadNames())
	if err != nil {
		log.Printf("⚠️ Load-more falhou para '%s': %v", project.Name, err)
		return &LoadMoreOutput{Added: 0, LeadCount: len(project.Leads)}, nil
	}

	newLeads := buildLeads(project, results)
	for _, l := range newLeads {
		if err := uc.LeadRepo.Insert(ctx, l); err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		project.Leads = append(project.Leads, l)
	}

	return &LoadMoreOutput{Added: len(newLeads), LeadCount: len(project.Leads)}, nil
}

// buildLeads transforma resultados de busca em leads do projeto, aplicando
// deduplicação por nome (case-insensitive) e os pós-filtros do projeto.
func buildLeads(project *entity.Project, results []SearchResult) []*entity.Lead {
	var leads []*entity.Lead
	seen := make(map[string]bool, len(project.Leads))
	for _, existing := range project.Leads {
		seen[foldName(existing.CompanyName)] = true
	}

	for _, res := range results {
		key := foldName(res.CompanyName)
		if key == "" || seen[key] {
			continue
		}
		if project.MustHaveWebsite && strings.TrimSpace(res.Website) == "" {
			continue
		}
		if project.MinRating > 0 && res.Rating < project.MinRating {
			continue
		}

		lead, err := entity.NewLead(res.CompanyName)
		if err != nil {
			continue
		}
		lead.ProjectID = project.ID
		lead.Category = res.Category
		lead.Address = res.Address
		lead.Website = res.Website
		lead.Phone = res.Phone
		lead.Rating = res.Rating
		lead.ReviewCount = res.ReviewCount
		lead.SourceURL = res.SourceURL
		lead.Recompute()

		seen[key] = true
		leads = append(leads, lead)
	}

	return leads
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
