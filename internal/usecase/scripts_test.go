package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// MockScriptRepository
type MockScriptRepository struct {
	mock.Mock
}

func (m *MockScriptRepository) Create(ctx context.Context, s *entity.Script) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScriptRepository) Update(ctx context.Context, s *entity.Script) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScriptRepository) FindByID(ctx context.Context, id string) (*entity.Script, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Script), args.Error(1)
}

func (m *MockScriptRepository) List(ctx context.Context) ([]*entity.Script, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Script), args.Error(1)
}

func (m *MockScriptRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockScriptGenerator
type MockScriptGenerator struct {
	mock.Mock
}

func (m *MockScriptGenerator) GenerateScript(ctx context.Context, goal, tone string) (string, error) {
	args := m.Called(ctx, goal, tone)
	return args.String(0), args.Error(1)
}

// TestGenerateScriptPersists - conteúdo da IA vira script com goal e tone
func TestGenerateScriptPersists(t *testing.T) {
	ctx := context.Background()

	mockScriptRepo := new(MockScriptRepository)
	mockGenerator := new(MockScriptGenerator)

	mockGenerator.On("GenerateScript", ctx, "book_meeting", "friendly").
		Return("<p>Hi {{leadName}}, this is {{myName}}.</p>", nil)
	mockScriptRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewScriptUseCase(mockScriptRepo, new(MockLeadRepository), mockGenerator, "Alex", "Ligue")

	script, err := uc.Generate(ctx, GenerateScriptInput{Name: "Cold Call v1", Goal: "book_meeting", Tone: "friendly"})

	assert.NoError(t, err)
	assert.Equal(t, "Cold Call v1", script.Name)
	assert.Equal(t, "book_meeting", script.Goal)
	assert.Contains(t, script.Content, "{{leadName}}")
	mockScriptRepo.AssertExpectations(t)
}

// TestGenerateScriptFailurePropagates - IA fora do ar não persiste nada
func TestGenerateScriptFailurePropagates(t *testing.T) {
	ctx := context.Background()

	mockScriptRepo := new(MockScriptRepository)
	mockGenerator := new(MockScriptGenerator)
	mockGenerator.On("GenerateScript", ctx, mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	uc := NewScriptUseCase(mockScriptRepo, new(MockLeadRepository), mockGenerator, "Alex", "Ligue")

	_, err := uc.Generate(ctx, GenerateScriptInput{Name: "Cold Call v1"})

	assert.True(t, IsTechnicalError(err))
	mockScriptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestRenderForLeadUsesRealData - hora da ligação usa os dados do lead
func TestRenderForLeadUsesRealData(t *testing.T) {
	ctx := context.Background()

	script, _ := entity.NewScript("Cold Call v1", "Hi {{leadName}}, {{myName}} here from {{myCompany}}. Is {{ceo}} available?")
	lead, _ := entity.NewLead("Acme Plumbing")
	lead.CEOName = "Jane Cooper"

	mockScriptRepo := new(MockScriptRepository)
	mockLeadRepo := new(MockLeadRepository)
	mockScriptRepo.On("FindByID", ctx, script.ID).Return(script, nil)
	mockLeadRepo.On("FindByID", ctx, lead.ID).Return(lead, nil)

	uc := NewScriptUseCase(mockScriptRepo, mockLeadRepo, new(MockScriptGenerator), "Alex", "Ligue")

	out, err := uc.RenderForLead(ctx, script.ID, lead.ID)

	assert.NoError(t, err)
	assert.Equal(t, "Hi Acme Plumbing, Alex here from Ligue. Is Jane Cooper available?", out)
}

// TestRenderPreviewUsesDemoData - preview não depende de lead nenhum
func TestRenderPreviewUsesDemoData(t *testing.T) {
	ctx := context.Background()

	script, _ := entity.NewScript("Cold Call v1", "Hi {{leadName}}!")

	mockScriptRepo := new(MockScriptRepository)
	mockScriptRepo.On("FindByID", ctx, script.ID).Return(script, nil)

	uc := NewScriptUseCase(mockScriptRepo, new(MockLeadRepository), new(MockScriptGenerator), "Alex", "Ligue")

	out, err := uc.RenderPreview(ctx, script.ID)

	assert.NoError(t, err)
	assert.Equal(t, "Hi Acme Plumbing!", out)
}
