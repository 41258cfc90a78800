package matching

import (
	"copytrade/internal/models"
	"copytrade/pkg/utils"
)

// subscores.go - sub-score калькуляторы Risk / Style / Frequency
//
// Общая политика (одинаковая для всех трех измерений):
//  1. Если у лидера есть стратегии - балл выводится из них (среднее
//     по стратегиям через таблицы riskLevel / tradeType).
//     При наличии агрегированных показателей стратегийный балл
//     блендится с перцентильным: 0.6*strategy + 0.4*performance.
//  2. Без стратегий, но с показателями - балл чисто перцентильный.
//  3. Без того и другого - нейтральный 0.5 с warning в лог.
//  4. Итог: closeness-трансформация 1 - |ординал копира - балл лидера|.
//
// Калькуляторы никогда не возвращают ошибку наверх: любая деградация
// данных сворачивается в нейтральное значение на месте.

// Веса бленда стратегийного и перцентильного баллов.
// Тюнингованные константы: их точные значения воспроизводят
// существующее ранжирование, менять нельзя.
const (
	blendStrategyWeight    = 0.6
	blendPerformanceWeight = 0.4
)

// Баллы агрессивности по tradeType (измерение Style)
var styleByTradeType = map[string]float64{
	models.TradeTypeScalping:        0.8,
	models.TradeTypeDayTrading:      0.8,
	models.TradeTypePositionTrading: 0.3,
}

// Баллы частоты по tradeType (измерение Frequency)
var frequencyByTradeType = map[string]float64{
	models.TradeTypeScalping:        1.0, // daily
	models.TradeTypeDayTrading:      1.0, // daily
	models.TradeTypeSwingTrading:    0.5, // weekly
	models.TradeTypePositionTrading: 0.0, // monthly
}

// closeness - совместимость как близость двух ординалов:
// 1 при совпадении, линейно спадает до 0 при максимальном расхождении
func closeness(copierOrdinal, leaderScore float64) float64 {
	return utils.Clamp(1-utils.Abs(copierOrdinal-leaderScore), 0, 1)
}

// ============ Risk ============

func (e *Engine) riskScore(p *models.MatchingParameters, leader *models.User, strategies []*models.TradingStrategy, b *Baseline) float64 {
	return closeness(RiskToleranceOrdinal(p.RiskTolerance), e.leaderRiskScore(leader, strategies, b))
}

// leaderRiskScore выводит уровень риска лидера в [0,1]
func (e *Engine) leaderRiskScore(leader *models.User, strategies []*models.TradingStrategy, b *Baseline) float64 {
	if len(strategies) > 0 {
		strategyScore := e.strategyRiskScore(leader.ID, strategies)
		if leader.Performance != nil {
			// Высокий winRate -> низкий выведенный риск
			perfScore := 1 - PercentileRank(leader.Performance.WinRate, b.WinRates)
			return blendStrategyWeight*strategyScore + blendPerformanceWeight*perfScore
		}
		return strategyScore
	}

	if leader.Performance != nil {
		winRatePct := PercentileRank(leader.Performance.WinRate, b.WinRates)
		tradesPct := PercentileRank(float64(leader.Performance.TotalTrades), b.TradeCounts)
		// Высокий winRate и много сделок -> низкий риск
		return 1 - (0.7*winRatePct + 0.3*tradesPct)
	}

	e.warnNeutral(leader.ID, "risk")
	return neutralScore
}

// strategyRiskScore - средний ординал riskLevel по стратегиям лидера
func (e *Engine) strategyRiskScore(leaderID string, strategies []*models.TradingStrategy) float64 {
	var sum float64
	for _, s := range strategies {
		if s.RiskLevel == "" {
			e.log.Warn("strategy has no risk level, using neutral",
				utils.Leader(leaderID),
				utils.Strategy(s.ID))
		}
		sum += RiskLevelOrdinal(s.RiskLevel)
	}
	return sum / float64(len(strategies))
}

// ============ Style ============

func (e *Engine) styleScore(p *models.MatchingParameters, leader *models.User, strategies []*models.TradingStrategy, b *Baseline) float64 {
	return closeness(InvestmentStyleOrdinal(p.InvestmentStyle), e.leaderStyleScore(leader, strategies, b))
}

// leaderStyleScore выводит агрессивность стиля лидера в [0,1]
func (e *Engine) leaderStyleScore(leader *models.User, strategies []*models.TradingStrategy, b *Baseline) float64 {
	if len(strategies) > 0 {
		strategyScore := e.strategyStyleScore(leader.ID, strategies)
		if leader.Performance != nil {
			perfScore := PercentileRank(leader.Performance.MonthlyReturn, b.MonthlyReturns)
			return blendStrategyWeight*strategyScore + blendPerformanceWeight*perfScore
		}
		return strategyScore
	}

	if leader.Performance != nil {
		returnPct := PercentileRank(leader.Performance.MonthlyReturn, b.MonthlyReturns)
		winRatePct := PercentileRank(leader.Performance.WinRate, b.WinRates)
		// Высокая доходность при низком winRate -> агрессивный стиль
		return 0.7*returnPct + 0.3*(1-winRatePct)
	}

	e.warnNeutral(leader.ID, "style")
	return neutralScore
}

// strategyStyleScore - средняя агрессивность tradeType по стратегиям
func (e *Engine) strategyStyleScore(leaderID string, strategies []*models.TradingStrategy) float64 {
	var sum float64
	for _, s := range strategies {
		if s.TradeType == "" {
			e.log.Warn("strategy has no trade type, using neutral",
				utils.Leader(leaderID),
				utils.Strategy(s.ID))
			sum += neutralScore
			continue
		}
		if score, ok := styleByTradeType[s.TradeType]; ok {
			sum += score
		} else {
			sum += neutralScore // неизвестная категория - умеренный стиль
		}
	}
	return sum / float64(len(strategies))
}

// ============ Frequency ============

func (e *Engine) frequencyScore(p *models.MatchingParameters, leader *models.User, strategies []*models.TradingStrategy, b *Baseline) float64 {
	return closeness(TradingFrequencyOrdinal(p.TradingFrequency), e.leaderFrequencyScore(leader, strategies, b))
}

// leaderFrequencyScore выводит частоту торговли лидера в [0,1]
func (e *Engine) leaderFrequencyScore(leader *models.User, strategies []*models.TradingStrategy, b *Baseline) float64 {
	if len(strategies) > 0 {
		strategyScore := e.strategyFrequencyScore(strategies)
		if leader.Performance != nil {
			perfScore := PercentileRank(float64(leader.Performance.TotalTrades), b.TradeCounts)
			return blendStrategyWeight*strategyScore + blendPerformanceWeight*perfScore
		}
		return strategyScore
	}

	if leader.Performance != nil {
		// Много сделок относительно популяции -> высокая частота
		return PercentileRank(float64(leader.Performance.TotalTrades), b.TradeCounts)
	}

	e.warnNeutral(leader.ID, "frequency")
	return neutralScore
}

// strategyFrequencyScore - средняя частота tradeType по стратегиям
func (e *Engine) strategyFrequencyScore(strategies []*models.TradingStrategy) float64 {
	var sum float64
	for _, s := range strategies {
		if score, ok := frequencyByTradeType[s.TradeType]; ok {
			sum += score
		} else {
			sum += neutralScore
		}
	}
	return sum / float64(len(strategies))
}
