package models

import "time"

// UserType определяет роль пользователя на платформе
type UserType string

// Роли пользователей
const (
	UserTypeLeader UserType = "leader" // трейдер, чьи сделки копируют
	UserTypeCopier UserType = "copier" // инвестор, копирующий сделки
)

// RiskTolerance - заявленная терпимость копира к риску
type RiskTolerance string

// Уровни терпимости к риску
const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

// InvestmentStyle - заявленный инвестиционный стиль копира
type InvestmentStyle string

// Инвестиционные стили
const (
	InvestmentStyleConservative InvestmentStyle = "conservative"
	InvestmentStyleModerate     InvestmentStyle = "moderate"
	InvestmentStyleAggressive   InvestmentStyle = "aggressive"
)

// TradingFrequency - желаемая частота торговли копира
type TradingFrequency string

// Частоты торговли
const (
	TradingFrequencyDaily   TradingFrequency = "daily"
	TradingFrequencyWeekly  TradingFrequency = "weekly"
	TradingFrequencyMonthly TradingFrequency = "monthly"
)

// MatchingParameters представляет торговые предпочтения копира.
//
// Используются движком подбора лидеров (internal/matching) как
// "заявленная" сторона совместимости. Неизвестные значения enum-полей
// не являются ошибкой: движок трактует их как нейтральный ординал 0.5
// (fail closed, см. matching/ordinals.go).
type MatchingParameters struct {
	RiskTolerance    RiskTolerance    `json:"risk_tolerance" db:"risk_tolerance"`
	InvestmentStyle  InvestmentStyle  `json:"investment_style" db:"investment_style"`
	TradingFrequency TradingFrequency `json:"trading_frequency" db:"trading_frequency"`
	PreferredMarkets []string         `json:"preferred_markets" db:"preferred_markets"` // имена рынков, например ["USD", "BTC"]
	MaxDrawdown      float64          `json:"max_drawdown" db:"max_drawdown"`           // максимальная просадка в %
	TargetReturn     float64          `json:"target_return" db:"target_return"`         // целевая доходность в %
}

// LeaderPerformance - агрегированные показатели лидера.
//
// Опциональный блок: у нового лидера без истории он отсутствует (nil),
// и движок переходит на нейтральные значения либо на данные стратегий.
type LeaderPerformance struct {
	WinRate       float64 `json:"win_rate" db:"win_rate"`             // 0-100
	TotalPnl      float64 `json:"total_pnl" db:"total_pnl"`           // со знаком
	MonthlyReturn float64 `json:"monthly_return" db:"monthly_return"` // % со знаком
	TotalTrades   int     `json:"total_trades" db:"total_trades"`     // >= 0
}

// User представляет пользователя платформы (лидера или копира).
//
// Все сущности - read-only снимки на время одного запроса:
// сервис ничего не мутирует и не кеширует между запросами.
type User struct {
	ID          string              `json:"id" db:"id"`
	Username    string              `json:"username" db:"username"`
	UserType    UserType            `json:"user_type" db:"user_type"`
	AccountIDs  []string            `json:"account_ids" db:"account_ids"`   // торговые счета лидера
	FollowerIDs []string            `json:"follower_ids" db:"follower_ids"` // подписчики (прокси количества копиров)
	Performance *LeaderPerformance  `json:"performance,omitempty"`          // nil = нет истории
	Preferences *MatchingParameters `json:"trading_preferences,omitempty"`  // nil = не заданы
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}

// IsLeader проверяет, является ли пользователь лидером
func (u *User) IsLeader() bool {
	return u.UserType == UserTypeLeader
}
