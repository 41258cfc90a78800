package matching

import "copytrade/internal/models"

// ordinals.go - отображение закрытых enum-множеств в ординалы [0,1]
//
// Таблицы неизменяемые: инициализируются один раз и никогда не мутируются.
// Неизвестное значение enum-поля не ошибка, а деградация к нейтральному
// ординалу 0.5 (fail closed). Типизированные string-константы в models
// делают опечатки в собственном коде невозможными; fallback остается
// только для данных, пришедших из внешнего хранилища.

// neutralScore - нейтральное значение для всех вычислений движка:
// "информации нет" всегда означает 0.5, а не 0.
const neutralScore = 0.5

var riskToleranceOrdinals = map[models.RiskTolerance]float64{
	models.RiskToleranceLow:    0,
	models.RiskToleranceMedium: 0.5,
	models.RiskToleranceHigh:   1,
}

var investmentStyleOrdinals = map[models.InvestmentStyle]float64{
	models.InvestmentStyleConservative: 0,
	models.InvestmentStyleModerate:     0.5,
	models.InvestmentStyleAggressive:   1,
}

var tradingFrequencyOrdinals = map[models.TradingFrequency]float64{
	models.TradingFrequencyMonthly: 0,
	models.TradingFrequencyWeekly:  0.5,
	models.TradingFrequencyDaily:   1,
}

var riskLevelOrdinals = map[models.RiskLevel]float64{
	models.RiskLevelLow:    0,
	models.RiskLevelMedium: 0.5,
	models.RiskLevelHigh:   1,
}

// RiskToleranceOrdinal возвращает ординал терпимости к риску копира
func RiskToleranceOrdinal(v models.RiskTolerance) float64 {
	if ord, ok := riskToleranceOrdinals[v]; ok {
		return ord
	}
	return neutralScore
}

// InvestmentStyleOrdinal возвращает ординал инвестиционного стиля копира
func InvestmentStyleOrdinal(v models.InvestmentStyle) float64 {
	if ord, ok := investmentStyleOrdinals[v]; ok {
		return ord
	}
	return neutralScore
}

// TradingFrequencyOrdinal возвращает ординал частоты торговли копира
func TradingFrequencyOrdinal(v models.TradingFrequency) float64 {
	if ord, ok := tradingFrequencyOrdinals[v]; ok {
		return ord
	}
	return neutralScore
}

// RiskLevelOrdinal возвращает ординал уровня риска стратегии
func RiskLevelOrdinal(v models.RiskLevel) float64 {
	if ord, ok := riskLevelOrdinals[v]; ok {
		return ord
	}
	return neutralScore
}
