package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// MockProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Insert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) SetEnriching(ctx context.Context, leadIDs []string, enriching bool) error {
	args := m.Called(ctx, leadIDs, enriching)
	return args.Error(0)
}

func (m *MockLeadRepository) AppendCallLog(ctx context.Context, lead *entity.Lead, cl entity.CallLog) error {
	args := m.Called(ctx, lead, cl)
	return args.Error(0)
}

// MockContactListRepository
type MockContactListRepository struct {
	mock.Mock
}

func (m *MockContactListRepository) Create(ctx context.Context, cl *entity.ContactList) error {
	args := m.Called(ctx, cl)
	return args.Error(0)
}

func (m *MockContactListRepository) FindByID(ctx context.Context, id string) (*entity.ContactList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContactList), args.Error(1)
}

func (m *MockContactListRepository) List(ctx context.Context) ([]*entity.ContactList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ContactList), args.Error(1)
}

func (m *MockContactListRepository) UpdateStage(ctx context.Context, id, stage string) error {
	args := m.Called(ctx, id, stage)
	return args.Error(0)
}

func (m *MockContactListRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSearcher
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchBusinesses(ctx context.Context, industry, location string, limit int, excludeNames []string) ([]SearchResult, error) {
	args := m.Called(ctx, industry, location, limit, excludeNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SearchResult), args.Error(1)
}

// MockAnalyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeCall(ctx context.Context, outcome, leadName string) (*entity.CallAnalysis, error) {
	args := m.Called(ctx, outcome, leadName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CallAnalysis), args.Error(1)
}

