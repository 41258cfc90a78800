package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"copytrade/internal/matching"
	"copytrade/internal/models"
	"copytrade/internal/repository"
	"copytrade/pkg/retry"
	"copytrade/pkg/utils"
)

// Ошибки сервиса подбора
var (
	ErrCopierNotFound    = errors.New("copier not found")
	ErrPreferencesNotSet = errors.New("copier has no matching preferences")
)

const (
	defaultMaxSuggestions     = 5
	defaultMaxConcurrentScans = 8
)

// SuggestionService - подбор лидеров для копира.
//
// Функции:
// - GetLeaderSuggestions: полный конвейер подбора для одного копира
//
// Конвейер на один запрос:
//  1. Загрузка копира и проверка его параметров подбора
//  2. Загрузка всех лидеров
//  3. Параллельная загрузка стратегий каждого лидера (с retry)
//  4. Базовые распределения по всей выборке лидеров
//  5. Скоринг каждого лидера и обогащение рекомендаций
//  6. Стабильная сортировка по убыванию балла, топ-N
//
// Сбой загрузки стратегий одного лидера не валит запрос: лидер
// попадает в выдачу заглушкой с нулевыми баллами.
type SuggestionService struct {
	userRepo     UserRepositoryInterface
	strategyRepo StrategyRepositoryInterface
	engine       *matching.Engine
	log          *zap.Logger

	maxSuggestions int
	maxConcurrent  int
	retryCfg       retry.Config
}

// NewSuggestionService создает новый экземпляр SuggestionService
func NewSuggestionService(
	userRepo UserRepositoryInterface,
	strategyRepo StrategyRepositoryInterface,
	engine *matching.Engine,
	log *zap.Logger,
) *SuggestionService {
	if log == nil {
		log = zap.NewNop()
	}

	cfg := retry.DefaultConfig()
	cfg.MaxRetries = 3
	cfg.MaxDelay = 2 * time.Second
	cfg.RetryIf = func(err error) bool {
		return retry.IsRetryable(err) && retry.RetryIfNotContext(err)
	}

	return &SuggestionService{
		userRepo:       userRepo,
		strategyRepo:   strategyRepo,
		engine:         engine,
		log:            log,
		maxSuggestions: defaultMaxSuggestions,
		maxConcurrent:  defaultMaxConcurrentScans,
		retryCfg:       cfg,
	}
}

// SetLimits переопределяет размер выдачи и степень параллелизма.
//
// Вызывается из main.go при нестандартной конфигурации.
func (s *SuggestionService) SetLimits(maxSuggestions, maxConcurrent int) {
	if maxSuggestions > 0 {
		s.maxSuggestions = maxSuggestions
	}
	if maxConcurrent > 0 {
		s.maxConcurrent = maxConcurrent
	}
}

// GetLeaderSuggestions возвращает топ-N лидеров, совместимых с копиром.
//
// Ошибки:
// - ErrCopierNotFound: копир не существует
// - ErrPreferencesNotSet: у копира нет параметров подбора
// Остальные ошибки инфраструктурные (хранилище, контекст).
func (s *SuggestionService) GetLeaderSuggestions(ctx context.Context, copierID string) (*models.SuggestionList, error) {
	timer := prometheus.NewTimer(matching.SuggestionLatency)
	defer timer.ObserveDuration()

	copier, err := s.loadCopier(ctx, copierID)
	if err != nil {
		if errors.Is(err, ErrCopierNotFound) || errors.Is(err, ErrPreferencesNotSet) {
			matching.SuggestionRequests.WithLabelValues("not_found").Inc()
		} else {
			matching.SuggestionRequests.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	leaders, err := s.userRepo.GetLeaders(ctx)
	if err != nil {
		matching.SuggestionRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load leaders: %w", err)
	}

	if len(leaders) == 0 {
		matching.SuggestionRequests.WithLabelValues("success").Inc()
		return &models.SuggestionList{Suggestions: []*models.LeaderSuggestion{}}, nil
	}

	strategiesByLeader, loadErrs := s.loadAllStrategies(ctx, leaders)
	if err := ctx.Err(); err != nil {
		matching.SuggestionRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	baseline := matching.BuildBaseline(leaders, strategiesByLeader)
	weights := matching.SelectWeights(copier.Preferences)

	suggestions := make([]*models.LeaderSuggestion, len(leaders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, leader := range leaders {
		i, leader := i, leader
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if loadErrs[i] != nil {
				s.log.Warn("strategy load failed, emitting placeholder",
					utils.Leader(leader.ID),
					utils.Err(loadErrs[i]))
				suggestions[i] = placeholderSuggestion(leader.ID)
				return nil
			}

			strategies := strategiesByLeader[leader.ID]
			details, score := s.engine.Score(copier.Preferences, leader, strategies, baseline, weights)
			suggestions[i] = s.buildSuggestion(leader, strategies, details, score)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		matching.SuggestionRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	// Стабильная сортировка: при равных баллах сохраняется
	// детерминированный порядок обхода лидеров из хранилища.
	sort.SliceStable(suggestions, func(a, b int) bool {
		return suggestions[a].CompatibilityScore > suggestions[b].CompatibilityScore
	})

	if len(suggestions) > s.maxSuggestions {
		suggestions = suggestions[:s.maxSuggestions]
	}

	s.log.Info("suggestions ready",
		utils.Copier(copierID),
		utils.Candidates(len(leaders)),
		utils.Int("returned", len(suggestions)))

	matching.SuggestionRequests.WithLabelValues("success").Inc()
	return &models.SuggestionList{
		Suggestions:  suggestions,
		TotalResults: len(suggestions),
	}, nil
}

// loadCopier загружает копира и проверяет наличие параметров подбора
func (s *SuggestionService) loadCopier(ctx context.Context, copierID string) (*models.User, error) {
	copier, err := s.userRepo.GetByID(ctx, copierID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrCopierNotFound
		}
		return nil, fmt.Errorf("load copier %s: %w", copierID, err)
	}

	if copier.Preferences == nil {
		return nil, ErrPreferencesNotSet
	}

	return copier, nil
}

// loadAllStrategies параллельно загружает стратегии всех лидеров.
//
// Возвращает карту лидер -> стратегии и слайс ошибок по позициям
// лидеров. Ошибка отдельного лидера не прерывает остальных.
func (s *SuggestionService) loadAllStrategies(ctx context.Context, leaders []*models.User) (map[string][]*models.TradingStrategy, []error) {
	results := make([][]*models.TradingStrategy, len(leaders))
	loadErrs := make([]error, len(leaders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, leader := range leaders {
		i, leader := i, leader
		g.Go(func() error {
			strategies, err := s.loadLeaderStrategies(gctx, leader)
			if err != nil {
				loadErrs[i] = err
				return nil
			}
			results[i] = strategies
			return nil
		})
	}

	// Горутины не возвращают ошибок, Wait здесь всегда nil
	_ = g.Wait()

	byLeader := make(map[string][]*models.TradingStrategy, len(leaders))
	for i, leader := range leaders {
		if loadErrs[i] == nil {
			byLeader[leader.ID] = results[i]
		}
	}

	return byLeader, loadErrs
}

// loadLeaderStrategies разрешает стратегии лидера.
//
// Основной путь - по leader_id. Если он пуст, стратегии собираются
// объединением по торговым счетам лидера с дедупликацией по ID.
func (s *SuggestionService) loadLeaderStrategies(ctx context.Context, leader *models.User) ([]*models.TradingStrategy, error) {
	strategies, err := retry.DoWithResult(ctx, func() ([]*models.TradingStrategy, error) {
		return s.strategyRepo.GetByLeaderID(ctx, leader.ID)
	}, s.retryCfg)
	if err != nil {
		return nil, fmt.Errorf("strategies by leader %s: %w", leader.ID, err)
	}

	if len(strategies) > 0 || len(leader.AccountIDs) == 0 {
		return strategies, nil
	}

	seen := make(map[string]struct{})
	for _, accountID := range leader.AccountIDs {
		accountID := accountID
		accStrategies, err := retry.DoWithResult(ctx, func() ([]*models.TradingStrategy, error) {
			return s.strategyRepo.GetByAccountID(ctx, accountID)
		}, s.retryCfg)
		if err != nil {
			return nil, fmt.Errorf("strategies by account %s: %w", accountID, err)
		}

		for _, strategy := range accStrategies {
			if _, dup := seen[strategy.ID]; dup {
				continue
			}
			seen[strategy.ID] = struct{}{}
			strategies = append(strategies, strategy)
		}
	}

	return strategies, nil
}

// buildSuggestion обогащает результат скоринга данными лидера.
//
// Копиры считаются объединением copier_ids по всем стратегиям
// лидера. В выдачу попадают только полные стратегии; неполные
// логируются и отбрасываются.
func (s *SuggestionService) buildSuggestion(leader *models.User, strategies []*models.TradingStrategy, details models.MatchDetails, score float64) *models.LeaderSuggestion {
	copiers := make(map[string]struct{})
	valid := make([]*models.TradingStrategy, 0, len(strategies))

	for _, strategy := range strategies {
		for _, copierID := range strategy.CopierIDs {
			copiers[copierID] = struct{}{}
		}

		if !strategy.IsComplete() {
			s.log.Warn("skipping incomplete strategy",
				utils.Leader(leader.ID),
				utils.Strategy(strategy.ID))
			continue
		}
		valid = append(valid, strategy)
	}

	return &models.LeaderSuggestion{
		LeaderID:           leader.ID,
		Username:           leader.Username,
		Copiers:            len(copiers),
		TotalProfit:        totalProfit(leader, valid),
		CompatibilityScore: score,
		MatchDetails:       details,
		Performance:        leader.Performance,
		Strategies:         valid,
	}
}

// totalProfit - детерминированная оценка прибыли лидера.
//
// Приоритет у агрегированных показателей лидера; при их отсутствии
// суммируется доходность полных стратегий.
func totalProfit(leader *models.User, strategies []*models.TradingStrategy) float64 {
	if leader.Performance != nil {
		return leader.Performance.TotalPnl
	}

	var total float64
	for _, strategy := range strategies {
		total += strategy.Performance.TotalReturn
	}
	return total
}

// placeholderSuggestion - заглушка для лидера, данные которого
// не удалось загрузить. Нулевой балл уводит ее в конец выдачи.
func placeholderSuggestion(leaderID string) *models.LeaderSuggestion {
	return &models.LeaderSuggestion{
		LeaderID:   leaderID,
		Username:   "Error",
		Strategies: []*models.TradingStrategy{},
	}
}
