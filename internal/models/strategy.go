package models

import "time"

// RiskLevel - уровень риска торговой стратегии
type RiskLevel string

// Уровни риска стратегии
const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Известные категории tradeType.
//
// Поле свободно-текстовое, но эти четыре значения несут смысл для
// движка подбора (агрессивность стиля и частота торговли).
// Любое другое значение трактуется как умеренное/нейтральное.
const (
	TradeTypeScalping        = "scalping"
	TradeTypeDayTrading      = "day_trading"
	TradeTypeSwingTrading    = "swing_trading"
	TradeTypePositionTrading = "position_trading"
)

// StrategyPerformance - показатели торговой стратегии
type StrategyPerformance struct {
	TotalReturn   float64 `json:"total_return" db:"total_return"`     // % со знаком
	WinRate       float64 `json:"win_rate" db:"win_rate"`             // 0-100
	AverageProfit float64 `json:"average_profit" db:"average_profit"` // % со знаком
}

// TradingStrategy представляет торговую стратегию лидера.
//
// Имя стратегии кодирует рынок: первый токен (по пробелу), в верхнем
// регистре, например "USD Scalping" -> "USD". Разбор изолирован в
// matching.MarketFromStrategyName.
type TradingStrategy struct {
	ID          string               `json:"id" db:"id"`
	LeaderID    string               `json:"leader_id" db:"leader_id"`
	AccountID   string               `json:"account_id" db:"account_id"`
	Name        string               `json:"name" db:"name"`
	RiskLevel   RiskLevel            `json:"risk_level" db:"risk_level"`
	TradeType   string               `json:"trade_type" db:"trade_type"`
	Performance *StrategyPerformance `json:"performance,omitempty"`
	CopierIDs   []string             `json:"copier_ids" db:"copier_ids"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
}

// IsComplete проверяет наличие всех обязательных полей стратегии.
//
// Неполные записи не попадают в список стратегий внутри LeaderSuggestion,
// но сам лидер из выдачи не исключается.
func (s *TradingStrategy) IsComplete() bool {
	return s.ID != "" && s.Name != "" && s.RiskLevel != "" && s.Performance != nil
}
