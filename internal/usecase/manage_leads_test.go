package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// TestAddManualLeadDuplicateBlocked - nome já existente no projeto é recusado,
// sem diferenciar maiúsculas
func TestAddManualLeadDuplicateBlocked(t *testing.T) {
	ctx := context.Background()

	project := buildProject(t, "Acme Plumbing")

	mockProjectRepo := new(MockProjectRepository)
	mockLeadRepo := new(MockLeadRepository)
	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)

	uc := NewManageLeadsUseCase(mockProjectRepo, mockLeadRepo)

	_, err := uc.AddManual(ctx, AddLeadInput{ProjectID: project.ID, CompanyName: "ACME plumbing"})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_LEAD", domainErr.Code)
	mockLeadRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

// TestAddManualLeadSuccess - lead avulso entra com score já calculado
func TestAddManualLeadSuccess(t *testing.T) {
	ctx := context.Background()

	project := buildProject(t)

	mockProjectRepo := new(MockProjectRepository)
	mockLeadRepo := new(MockLeadRepository)
	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)
	mockLeadRepo.On("Insert", ctx, mock.Anything).Return(nil)

	uc := NewManageLeadsUseCase(mockProjectRepo, mockLeadRepo)

	lead, err := uc.AddManual(ctx, AddLeadInput{
		ProjectID:   project.ID,
		CompanyName: "Bay Drains",
		Website:     "baydrains.com",
		Email:       "info@baydrains.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, project.ID, lead.ProjectID)
	assert.Equal(t, 50, lead.Score)
	assert.Equal(t, entity.ConfidenceMedium, lead.Confidence)
	mockLeadRepo.AssertExpectations(t)
}

// TestUpdateFieldsRecomputesDerived - edição recalcula score e confiança;
// ponteiro nulo não toca o campo
func TestUpdateFieldsRecomputesDerived(t *testing.T) {
	ctx := context.Background()

	lead, _ := entity.NewLead("Acme")
	lead.Website = "acme.com"
	lead.Recompute()

	mockLeadRepo := new(MockLeadRepository)
	mockLeadRepo.On("FindByID", ctx, lead.ID).Return(lead, nil)
	mockLeadRepo.On("Update", ctx, lead).Return(nil)

	uc := NewManageLeadsUseCase(new(MockProjectRepository), mockLeadRepo)

	email := "ceo@acme.com"
	ceo := "Jane Cooper"
	updated, err := uc.UpdateFields(ctx, lead.ID, UpdateLeadInput{Email: &email, CEOName: &ceo})

	assert.NoError(t, err)
	assert.Equal(t, "acme.com", updated.Website) // não veio no input, ficou
	assert.Equal(t, entity.ConfidenceHigh, updated.Confidence)
	assert.Equal(t, 25+25+15, updated.Score)
}

// TestUpdateFieldsValidation - email e status inválidos param na validação
func TestUpdateFieldsValidation(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	uc := NewManageLeadsUseCase(new(MockProjectRepository), mockLeadRepo)

	badEmail := "not-an-email"
	_, err := uc.UpdateFields(ctx, "lead-1", UpdateLeadInput{Email: &badEmail})
	assert.True(t, IsDomainError(err))

	badStatus := "ARCHIVED"
	_, err = uc.UpdateFields(ctx, "lead-1", UpdateLeadInput{Status: &badStatus})
	assert.True(t, IsDomainError(err))

	mockLeadRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// TestRemoveLeadNotFound
func TestRemoveLeadNotFound(t *testing.T) {
	ctx := context.Background()

	mockLeadRepo := new(MockLeadRepository)
	mockLeadRepo.On("FindByID", ctx, "nope").Return(nil, entity.ErrLeadNotFound)

	uc := NewManageLeadsUseCase(new(MockProjectRepository), mockLeadRepo)

	err := uc.Remove(ctx, "nope")
	assert.True(t, IsDomainError(err))
	mockLeadRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
