package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"copytrade/internal/matching"
	"copytrade/internal/models"
	"copytrade/pkg/utils"
)

// Веса композитных баллов рейтингов
const (
	leaderWinRateWeight = 0.4
	leaderReturnWeight  = 0.4
	leaderTradesWeight  = 0.2

	strategyReturnWeight = 0.5
	strategyWinWeight    = 0.3
	strategyProfitWeight = 0.2
)

// DiscoverService - публичные рейтинги лидеров и стратегий.
//
// Функции:
// - GetTopLeaders: рейтинг лидеров по агрегированным показателям
// - GetTopStrategies: рейтинг стратегий по их доходности
//
// В отличие от подбора, рейтинги не зависят от копира: балл
// строится только из перцентилей по всей выборке.
type DiscoverService struct {
	userRepo     UserRepositoryInterface
	strategyRepo StrategyRepositoryInterface
	log          *zap.Logger
}

// NewDiscoverService создает новый экземпляр DiscoverService
func NewDiscoverService(userRepo UserRepositoryInterface, strategyRepo StrategyRepositoryInterface, log *zap.Logger) *DiscoverService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DiscoverService{
		userRepo:     userRepo,
		strategyRepo: strategyRepo,
		log:          log,
	}
}

// GetTopLeaders возвращает топ лидеров по композитному баллу.
//
// Балл: 0.4 * перцентиль win rate + 0.4 * перцентиль месячной
// доходности + 0.2 * перцентиль числа сделок. Лидеры без
// агрегированных показателей в рейтинг не попадают.
func (s *DiscoverService) GetTopLeaders(ctx context.Context, limit int) ([]*models.LeaderRank, error) {
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}

	leaders, err := s.userRepo.GetLeaders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaders: %w", err)
	}

	ranked := make([]*models.User, 0, len(leaders))
	var winRates, returns, trades []float64
	for _, leader := range leaders {
		if leader.Performance == nil {
			continue
		}
		ranked = append(ranked, leader)
		winRates = append(winRates, leader.Performance.WinRate)
		returns = append(returns, leader.Performance.MonthlyReturn)
		trades = append(trades, float64(leader.Performance.TotalTrades))
	}

	ranks := make([]*models.LeaderRank, 0, len(ranked))
	for _, leader := range ranked {
		p := leader.Performance
		score := leaderWinRateWeight*matching.PercentileRank(p.WinRate, winRates) +
			leaderReturnWeight*matching.PercentileRank(p.MonthlyReturn, returns) +
			leaderTradesWeight*matching.PercentileRank(float64(p.TotalTrades), trades)

		ranks = append(ranks, &models.LeaderRank{
			LeaderID:    leader.ID,
			Username:    leader.Username,
			Score:       score,
			Followers:   len(leader.FollowerIDs),
			Performance: p,
		})
	}

	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].Score > ranks[b].Score
	})

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}

	return ranks, nil
}

// GetTopStrategies возвращает топ стратегий по композитному баллу.
//
// Балл: 0.5 * перцентиль общей доходности + 0.3 * перцентиль
// win rate + 0.2 * перцентиль средней прибыли на сделку.
// Неполные стратегии отбрасываются до построения перцентилей.
func (s *DiscoverService) GetTopStrategies(ctx context.Context, limit int) ([]*models.StrategyRank, error) {
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}

	strategies, err := s.strategyRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load strategies: %w", err)
	}

	complete := make([]*models.TradingStrategy, 0, len(strategies))
	var returns, winRates, profits []float64
	for _, strategy := range strategies {
		if !strategy.IsComplete() {
			s.log.Debug("skipping incomplete strategy in ranking",
				utils.Strategy(strategy.ID))
			continue
		}
		complete = append(complete, strategy)
		returns = append(returns, strategy.Performance.TotalReturn)
		winRates = append(winRates, strategy.Performance.WinRate)
		profits = append(profits, strategy.Performance.AverageProfit)
	}

	ranks := make([]*models.StrategyRank, 0, len(complete))
	for _, strategy := range complete {
		p := strategy.Performance
		score := strategyReturnWeight*matching.PercentileRank(p.TotalReturn, returns) +
			strategyWinWeight*matching.PercentileRank(p.WinRate, winRates) +
			strategyProfitWeight*matching.PercentileRank(p.AverageProfit, profits)

		ranks = append(ranks, &models.StrategyRank{
			StrategyID:  strategy.ID,
			LeaderID:    strategy.LeaderID,
			Name:        strategy.Name,
			Score:       score,
			Performance: p,
		})
	}

	sort.SliceStable(ranks, func(a, b int) bool {
		return ranks[a].Score > ranks[b].Score
	})

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}

	return ranks, nil
}
