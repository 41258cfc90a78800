package service

import (
	"context"

	"copytrade/internal/models"
	"copytrade/internal/repository"
)

// UserRepositoryInterface определяет интерфейс репозитория пользователей
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetLeaders(ctx context.Context) ([]*models.User, error)
}

// StrategyRepositoryInterface определяет интерфейс репозитория стратегий
type StrategyRepositoryInterface interface {
	GetByLeaderID(ctx context.Context, leaderID string) ([]*models.TradingStrategy, error)
	GetByAccountID(ctx context.Context, accountID string) ([]*models.TradingStrategy, error)
	GetAll(ctx context.Context) ([]*models.TradingStrategy, error)
}

// Проверяем, что реальные репозитории реализуют интерфейсы
var _ UserRepositoryInterface = (*repository.UserRepository)(nil)
var _ StrategyRepositoryInterface = (*repository.StrategyRepository)(nil)

// ============ Интерфейсы сервисов для Dependency Injection ============

// SuggestionServiceInterface определяет интерфейс сервиса подбора лидеров
type SuggestionServiceInterface interface {
	GetLeaderSuggestions(ctx context.Context, copierID string) (*models.SuggestionList, error)
}

// DiscoverServiceInterface определяет интерфейс сервиса рейтингов
type DiscoverServiceInterface interface {
	GetTopLeaders(ctx context.Context, limit int) ([]*models.LeaderRank, error)
	GetTopStrategies(ctx context.Context, limit int) ([]*models.StrategyRank, error)
}

// Проверяем, что реальные сервисы реализуют интерфейсы
var _ SuggestionServiceInterface = (*SuggestionService)(nil)
var _ DiscoverServiceInterface = (*DiscoverService)(nil)
