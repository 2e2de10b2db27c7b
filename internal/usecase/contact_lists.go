package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ContactListUseCase struct {
	ListRepo    ContactListRepositoryInterface
	ProjectRepo ProjectRepositoryInterface
	LeadRepo    LeadRepositoryInterface
}

func NewContactListUseCase(
	listRepo ContactListRepositoryInterface,
	projectRepo ProjectRepositoryInterface,
	leadRepo LeadRepositoryInterface,
) *ContactListUseCase {
	return &ContactListUseCase{
		ListRepo:    listRepo,
		ProjectRepo: projectRepo,
		LeadRepo:    leadRepo,
	}
}

type CreateContactListInput struct {
	Name  string `json:"name"`
	Stage string `json:"stage"`
}

func (uc *ContactListUseCase) Create(ctx context.Context, input CreateContactListInput) (*entity.ContactList, error) {
	list, err := entity.NewContactList(input.Name, input.Stage)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_LIST", Message: err.Error()}
	}

	if err := uc.ListRepo.Create(ctx, list); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return list, nil
}

type CopyLeadsInput struct {
	ListID    string   `json:"list_id"`
	ProjectID string   `json:"project_id"`
	LeadIDs   []string `json:"lead_ids"`
}

// CopyLeads duplica leads de um projeto para dentro de uma lista. Cada cópia
// é um registro novo: projetos e listas nunca compartilham um lead.
func (uc *ContactListUseCase) CopyLeads(ctx context.Context, input CopyLeadsInput) (int, error) {
	list, err := uc.ListRepo.FindByID(ctx, input.ListID)
	if err != nil {
		return 0, &DomainError{Code: "LIST_NOT_FOUND", Message: "lista inválida: " + err.Error()}
	}
	project, err := uc.ProjectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return 0, &DomainError{Code: "PROJECT_NOT_FOUND", Message: "projeto inválido: " + err.Error()}
	}

	wanted := make(map[string]bool, len(input.LeadIDs))
	for _, id := range input.LeadIDs {
		wanted[id] = true
	}

	copied := 0
	for _, src := range project.Leads {
		if len(input.LeadIDs) > 0 && !wanted[src.ID] {
			continue
		}
		cp := list.CopyLead(src)
		if err := uc.LeadRepo.Insert(ctx, cp); err != nil {
			return copied, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
		}
		copied++
	}

	return copied, nil
}

func (uc *ContactListUseCase) SetStage(ctx context.Context, listID, stage string) error {
	if !entity.ValidStage(stage) {
		return &DomainError{Code: "INVALID_STAGE", Message: "invalid pipeline stage: " + stage}
	}
	if _, err := uc.ListRepo.FindByID(ctx, listID); err != nil {
		return &DomainError{Code: "LIST_NOT_FOUND", Message: "lista inválida: " + err.Error()}
	}
	if err := uc.ListRepo.UpdateStage(ctx, listID, stage); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}

func (uc *ContactListUseCase) Delete(ctx context.Context, listID string) error {
	if err := uc.ListRepo.Delete(ctx, listID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	return nil
}
