package models

// MatchDetails - разбивка совместимости по четырем измерениям.
//
// Каждый sub-score лежит в [0,1]. Агрегат никогда не возвращается
// без разбивки: фронтенд объясняет пользователю, почему лидер подошел.
type MatchDetails struct {
	RiskScore      float64 `json:"risk_score"`
	StyleScore     float64 `json:"style_score"`
	MarketScore    float64 `json:"market_score"`
	FrequencyScore float64 `json:"frequency_score"`
}

// LeaderSuggestion - обогащенная рекомендация лидера для копира
type LeaderSuggestion struct {
	LeaderID           string             `json:"leader_id"`
	Username           string             `json:"username"`
	Copiers            int                `json:"copiers"`      // уникальные копиры по всем стратегиям лидера
	TotalProfit        float64            `json:"total_profit"` // TotalPnl лидера либо сумма доходностей стратегий
	CompatibilityScore float64            `json:"compatibility_score"` // [0,1]
	MatchDetails       MatchDetails       `json:"match_details"`
	Performance        *LeaderPerformance `json:"performance,omitempty"`
	Strategies         []*TradingStrategy `json:"strategies"` // только валидные (IsComplete)
}

// SuggestionList - ответ операции getLeaderSuggestions
type SuggestionList struct {
	Suggestions  []*LeaderSuggestion `json:"suggestions"`
	TotalResults int                 `json:"total_results"`
}

// LeaderRank - строка рейтинга лидеров (discover)
type LeaderRank struct {
	LeaderID    string             `json:"leader_id"`
	Username    string             `json:"username"`
	Score       float64            `json:"score"` // композитный балл [0,1]
	Followers   int                `json:"followers"`
	Performance *LeaderPerformance `json:"performance,omitempty"`
}

// StrategyRank - строка рейтинга стратегий (discover)
type StrategyRank struct {
	StrategyID  string               `json:"strategy_id"`
	LeaderID    string               `json:"leader_id"`
	Name        string               `json:"name"`
	Score       float64              `json:"score"`
	Performance *StrategyPerformance `json:"performance,omitempty"`
}
