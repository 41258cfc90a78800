package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"copytrade/internal/models"
)

// StrategyRepository - чтение торговых стратегий из таблицы strategies
type StrategyRepository struct {
	db *sql.DB
}

// NewStrategyRepository создает новый экземпляр репозитория
func NewStrategyRepository(db *sql.DB) *StrategyRepository {
	return &StrategyRepository{db: db}
}

const strategyColumns = `id, leader_id, account_id, name, risk_level, trade_type,
		total_return, win_rate, average_profit, copier_ids, created_at`

// GetByLeaderID возвращает стратегии лидера.
//
// Основной путь разрешения стратегий; при пустом результате сервис
// переходит на объединение стратегий по счетам лидера (GetByAccountID).
func (r *StrategyRepository) GetByLeaderID(ctx context.Context, leaderID string) ([]*models.TradingStrategy, error) {
	query := `
		SELECT ` + strategyColumns + `
		FROM strategies
		WHERE leader_id = $1
		ORDER BY created_at, id`

	return r.queryStrategies(ctx, query, leaderID)
}

// GetByAccountID возвращает стратегии, привязанные к торговому счету
func (r *StrategyRepository) GetByAccountID(ctx context.Context, accountID string) ([]*models.TradingStrategy, error) {
	query := `
		SELECT ` + strategyColumns + `
		FROM strategies
		WHERE account_id = $1
		ORDER BY created_at, id`

	return r.queryStrategies(ctx, query, accountID)
}

// GetAll возвращает все стратегии платформы (для рейтингов discover)
func (r *StrategyRepository) GetAll(ctx context.Context) ([]*models.TradingStrategy, error) {
	query := `
		SELECT ` + strategyColumns + `
		FROM strategies
		ORDER BY created_at, id`

	return r.queryStrategies(ctx, query)
}

func (r *StrategyRepository) queryStrategies(ctx context.Context, query string, args ...interface{}) ([]*models.TradingStrategy, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strategies []*models.TradingStrategy
	for rows.Next() {
		strategy, err := scanStrategy(rows)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}

	return strategies, rows.Err()
}

// scanStrategy читает одну строку strategies.
//
// Показатели стратегии - опциональная группа NULL-колонок, маркер
// наличия - total_return.
func scanStrategy(s rowScanner) (*models.TradingStrategy, error) {
	var (
		strategy  models.TradingStrategy
		riskLevel sql.NullString
		tradeType sql.NullString
		copierIDs pq.StringArray

		totalReturn   sql.NullFloat64
		winRate       sql.NullFloat64
		averageProfit sql.NullFloat64
	)

	err := s.Scan(
		&strategy.ID,
		&strategy.LeaderID,
		&strategy.AccountID,
		&strategy.Name,
		&riskLevel,
		&tradeType,
		&totalReturn,
		&winRate,
		&averageProfit,
		&copierIDs,
		&strategy.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	strategy.RiskLevel = models.RiskLevel(riskLevel.String)
	strategy.TradeType = tradeType.String
	strategy.CopierIDs = []string(copierIDs)

	if totalReturn.Valid {
		strategy.Performance = &models.StrategyPerformance{
			TotalReturn:   totalReturn.Float64,
			WinRate:       winRate.Float64,
			AverageProfit: averageProfit.Float64,
		}
	}

	return &strategy, nil
}
