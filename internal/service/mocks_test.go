package service

import (
	"context"
	"sync"

	"copytrade/internal/models"
	"copytrade/internal/repository"
)

// ============ Mock UserRepository ============

type MockUserRepository struct {
	mu      sync.Mutex
	users   map[string]*models.User
	leaders []*models.User

	getErr        error
	getLeadersErr error

	getCalls        int
	getLeadersCalls int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) AddUser(user *models.User) {
	m.users[user.ID] = user
	if user.IsLeader() {
		m.leaders = append(m.leaders, user)
	}
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if user, exists := m.users[id]; exists {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *MockUserRepository) GetLeaders(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getLeadersCalls++
	if m.getLeadersErr != nil {
		return nil, m.getLeadersErr
	}
	return m.leaders, nil
}

// ============ Mock StrategyRepository ============

type MockStrategyRepository struct {
	mu        sync.Mutex
	byLeader  map[string][]*models.TradingStrategy
	byAccount map[string][]*models.TradingStrategy

	leaderErrs map[string]error
	getAllErr  error

	leaderCalls  map[string]int
	accountCalls map[string]int
}

func NewMockStrategyRepository() *MockStrategyRepository {
	return &MockStrategyRepository{
		byLeader:     make(map[string][]*models.TradingStrategy),
		byAccount:    make(map[string][]*models.TradingStrategy),
		leaderErrs:   make(map[string]error),
		leaderCalls:  make(map[string]int),
		accountCalls: make(map[string]int),
	}
}

func (m *MockStrategyRepository) AddStrategy(strategy *models.TradingStrategy) {
	if strategy.LeaderID != "" {
		m.byLeader[strategy.LeaderID] = append(m.byLeader[strategy.LeaderID], strategy)
	}
	if strategy.AccountID != "" {
		m.byAccount[strategy.AccountID] = append(m.byAccount[strategy.AccountID], strategy)
	}
}

// AddAccountStrategy привязывает стратегию только к счету,
// моделируя данные без обратной ссылки на лидера.
func (m *MockStrategyRepository) AddAccountStrategy(strategy *models.TradingStrategy) {
	m.byAccount[strategy.AccountID] = append(m.byAccount[strategy.AccountID], strategy)
}

func (m *MockStrategyRepository) GetByLeaderID(ctx context.Context, leaderID string) ([]*models.TradingStrategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderCalls[leaderID]++
	if err, exists := m.leaderErrs[leaderID]; exists {
		return nil, err
	}
	return m.byLeader[leaderID], nil
}

func (m *MockStrategyRepository) GetByAccountID(ctx context.Context, accountID string) ([]*models.TradingStrategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountCalls[accountID]++
	return m.byAccount[accountID], nil
}

func (m *MockStrategyRepository) GetAll(ctx context.Context) ([]*models.TradingStrategy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	var all []*models.TradingStrategy
	for _, strategies := range m.byLeader {
		all = append(all, strategies...)
	}
	return all, nil
}
