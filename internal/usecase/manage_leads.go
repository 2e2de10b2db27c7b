package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ManageLeadsUseCase cobre as edições manuais: lead avulso, edição de campos
// no painel de detalhe e remoção explícita de lista/projeto.
type ManageLeadsUseCase struct {
	ProjectRepo ProjectRepositoryInterface
	LeadRepo    LeadRepositoryInterface
}

func NewManageLeadsUseCase(projectRepo ProjectRepositoryInterface, leadRepo LeadRepositoryInterface) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{ProjectRepo: projectRepo, LeadRepo: leadRepo}
}

type AddLeadInput struct {
	ProjectID   string `json:"project_id"`
	CompanyName string `json:"company_name"`
	Category    string `json:"category"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

func (uc *ManageLeadsUseCase) AddManual(ctx context.Context, input AddLeadInput) (*entity.Lead, error) {
	project, err := uc.ProjectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, &DomainError{Code: "PROJECT_NOT_FOUND", Message: "projeto inválido: " + err.Error()}
	}

	if project.ContainsName(input.CompanyName) {
		return nil, &DomainError{Code: "DUPLICATE_LEAD", Message: "lead with this name already exists in the project"}
	}

	lead, err := entity.NewLead(input.CompanyName)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_LEAD", Message: err.Error()}
	}
	lead.ProjectID = project.ID
	lead.Category = input.Category
	lead.Website = input.Website
	lead.Phone = input.Phone
	lead.Email = input.Email
	lead.Recompute()

	if err := uc.LeadRepo.Insert(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return lead, nil
}

// UpdateFields aplica a edição do painel de detalhe. Score e confiança são
// sempre recomputados no merge, nunca aceitos de fora.
func (uc *ManageLeadsUseCase) UpdateFields(ctx context.Context, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	if errs := ValidateUpdateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead inválido: " + err.Error()}
	}

	if input.Website != nil {
		lead.Website = *input.Website
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.EmailStatus != nil {
		lead.EmailStatus = *input.EmailStatus
	}
	if input.CEOName != nil {
		lead.CEOName = *input.CEOName
	}
	if input.Description != nil {
		lead.Description = *input.Description
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
	if input.Status != nil {
		lead.Status = *input.Status
	}
	if input.Rating != nil {
		lead.Rating = *input.Rating
	}
	lead.Recompute()

	if err := uc.LeadRepo.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return lead, nil
}

func (uc *ManageLeadsUseCase) Remove(ctx context.Context, leadID string) error {
	if _, err := uc.LeadRepo.FindByID(ctx, leadID); err != nil {
		return &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead inválido: " + err.Error()}
	}
	if err := uc.LeadRepo.Delete(ctx, leadID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}
