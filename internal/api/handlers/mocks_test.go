package handlers

import (
	"context"
	"errors"

	"copytrade/internal/models"
	"copytrade/internal/service"
)

// ErrMockDatabase - общая инфраструктурная ошибка для тестов
var ErrMockDatabase = errors.New("mock database error")

// ============ Mock SuggestionService ============

type MockSuggestionService struct {
	list       *models.SuggestionList
	err        error
	lastCopier string
	callCount  int
}

func NewMockSuggestionService() *MockSuggestionService {
	return &MockSuggestionService{
		list: &models.SuggestionList{Suggestions: []*models.LeaderSuggestion{}},
	}
}

func (m *MockSuggestionService) SetSuggestions(list *models.SuggestionList) {
	m.list = list
}

func (m *MockSuggestionService) SetError(err error) {
	m.err = err
}

func (m *MockSuggestionService) GetLeaderSuggestions(ctx context.Context, copierID string) (*models.SuggestionList, error) {
	m.callCount++
	m.lastCopier = copierID
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

var _ service.SuggestionServiceInterface = (*MockSuggestionService)(nil)

// ============ Mock DiscoverService ============

type MockDiscoverService struct {
	leaders    []*models.LeaderRank
	strategies []*models.StrategyRank
	err        error
	lastLimit  int
}

func NewMockDiscoverService() *MockDiscoverService {
	return &MockDiscoverService{}
}

func (m *MockDiscoverService) SetLeaders(leaders []*models.LeaderRank) {
	m.leaders = leaders
}

func (m *MockDiscoverService) SetStrategies(strategies []*models.StrategyRank) {
	m.strategies = strategies
}

func (m *MockDiscoverService) SetError(err error) {
	m.err = err
}

func (m *MockDiscoverService) GetTopLeaders(ctx context.Context, limit int) ([]*models.LeaderRank, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.leaders, nil
}

func (m *MockDiscoverService) GetTopStrategies(ctx context.Context, limit int) ([]*models.StrategyRank, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.strategies, nil
}

var _ service.DiscoverServiceInterface = (*MockDiscoverService)(nil)
