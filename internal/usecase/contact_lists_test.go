package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// TestCopyLeadsCreatesIndependentCopies - cópia ganha ID novo e perde o
// vínculo com o projeto; o original não muda
func TestCopyLeadsCreatesIndependentCopies(t *testing.T) {
	ctx := context.Background()

	project := buildProject(t, "Acme Plumbing", "Bay Drains")
	list, err := entity.NewContactList("Quentes", entity.StageQualified)
	assert.NoError(t, err)

	mockListRepo := new(MockContactListRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockLeadRepo := new(MockLeadRepository)

	mockListRepo.On("FindByID", ctx, list.ID).Return(list, nil)
	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)
	mockLeadRepo.On("Insert", ctx, mock.Anything).Return(nil)

	uc := NewContactListUseCase(mockListRepo, mockProjectRepo, mockLeadRepo)

	copied, err := uc.CopyLeads(ctx, CopyLeadsInput{ListID: list.ID, ProjectID: project.ID})

	assert.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.Len(t, list.Leads, 2)

	cp := list.Leads[0]
	src := project.Leads[0]
	assert.NotEqual(t, src.ID, cp.ID)
	assert.Equal(t, src.CompanyName, cp.CompanyName)
	assert.Empty(t, cp.ProjectID)
	assert.Equal(t, list.ID, cp.ContactListID)

	// Original permanece no projeto
	assert.Equal(t, project.ID, src.ProjectID)
}

// TestCopyLeadsSubset - com IDs informados só os selecionados são copiados
func TestCopyLeadsSubset(t *testing.T) {
	ctx := context.Background()

	project := buildProject(t, "Acme", "Bay Drains", "Golden Gate Pipes")
	list, _ := entity.NewContactList("Seleção", "")

	mockListRepo := new(MockContactListRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockLeadRepo := new(MockLeadRepository)

	mockListRepo.On("FindByID", ctx, list.ID).Return(list, nil)
	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)
	mockLeadRepo.On("Insert", ctx, mock.Anything).Return(nil)

	uc := NewContactListUseCase(mockListRepo, mockProjectRepo, mockLeadRepo)

	copied, err := uc.CopyLeads(ctx, CopyLeadsInput{
		ListID:    list.ID,
		ProjectID: project.ID,
		LeadIDs:   []string{project.Leads[2].ID},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, copied)
	assert.Equal(t, "Golden Gate Pipes", list.Leads[0].CompanyName)
}

// TestSetStageRejectsUnknownStage
func TestSetStageRejectsUnknownStage(t *testing.T) {
	ctx := context.Background()

	mockListRepo := new(MockContactListRepository)
	uc := NewContactListUseCase(mockListRepo, new(MockProjectRepository), new(MockLeadRepository))

	err := uc.SetStage(ctx, "list-1", "LUKEWARM")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STAGE", domainErr.Code)
	mockListRepo.AssertNotCalled(t, "UpdateStage", mock.Anything, mock.Anything, mock.Anything)
}

// TestCreateContactListDefaultsToCold - sem estágio informado nasce em COLD
func TestCreateContactListDefaultsToCold(t *testing.T) {
	ctx := context.Background()

	mockListRepo := new(MockContactListRepository)
	mockListRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewContactListUseCase(mockListRepo, new(MockProjectRepository), new(MockLeadRepository))

	list, err := uc.Create(ctx, CreateContactListInput{Name: "Novos contatos"})

	assert.NoError(t, err)
	assert.Equal(t, entity.StageCold, list.Stage)
}
