package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"copytrade/internal/models"
)

// Ошибки репозитория пользователей
var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository - чтение пользователей из таблицы users.
//
// Сервис подбора работает с хранилищем только на чтение: все сущности -
// снимки на время одного запроса, записей из этого сервиса нет.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создает новый экземпляр репозитория
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, user_type, account_ids, follower_ids,
		win_rate, total_pnl, monthly_return, total_trades,
		risk_tolerance, investment_style, trading_frequency,
		preferred_markets, max_drawdown, target_return, created_at`

// GetByID возвращает пользователя по идентификатору
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetLeaders возвращает всех лидеров платформы.
//
// Порядок детерминированный (по created_at, затем id): от него зависит
// разрешение ничьих при ранжировании - стабильная сортировка по баллу
// сохраняет исходный порядок обхода.
func (r *UserRepository) GetLeaders(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_type = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, models.UserTypeLeader)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaders []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		leaders = append(leaders, user)
	}

	return leaders, rows.Err()
}

// rowScanner - общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanUser читает одну строку users.
//
// Опциональные группы колонок (показатели, предпочтения) приходят
// NULL-ами; маркер наличия группы - ее первая колонка (win_rate,
// risk_tolerance). Полнота группы гарантируется схемой.
func scanUser(s rowScanner) (*models.User, error) {
	var (
		user             models.User
		accountIDs       pq.StringArray
		followerIDs      pq.StringArray
		preferredMarkets pq.StringArray

		winRate       sql.NullFloat64
		totalPnl      sql.NullFloat64
		monthlyReturn sql.NullFloat64
		totalTrades   sql.NullInt64

		riskTolerance    sql.NullString
		investmentStyle  sql.NullString
		tradingFrequency sql.NullString
		maxDrawdown      sql.NullFloat64
		targetReturn     sql.NullFloat64
	)

	err := s.Scan(
		&user.ID,
		&user.Username,
		&user.UserType,
		&accountIDs,
		&followerIDs,
		&winRate,
		&totalPnl,
		&monthlyReturn,
		&totalTrades,
		&riskTolerance,
		&investmentStyle,
		&tradingFrequency,
		&preferredMarkets,
		&maxDrawdown,
		&targetReturn,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.AccountIDs = []string(accountIDs)
	user.FollowerIDs = []string(followerIDs)

	if winRate.Valid {
		user.Performance = &models.LeaderPerformance{
			WinRate:       winRate.Float64,
			TotalPnl:      totalPnl.Float64,
			MonthlyReturn: monthlyReturn.Float64,
			TotalTrades:   int(totalTrades.Int64),
		}
	}

	if riskTolerance.Valid {
		user.Preferences = &models.MatchingParameters{
			RiskTolerance:    models.RiskTolerance(riskTolerance.String),
			InvestmentStyle:  models.InvestmentStyle(investmentStyle.String),
			TradingFrequency: models.TradingFrequency(tradingFrequency.String),
			PreferredMarkets: []string(preferredMarkets),
			MaxDrawdown:      maxDrawdown.Float64,
			TargetReturn:     targetReturn.Float64,
		}
	}

	return &user, nil
}
