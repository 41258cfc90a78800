package matching

import (
	"copytrade/internal/models"
	"copytrade/pkg/utils"
)

// market_score.go - sub-score по рынкам
//
// Единственное измерение БЕЗ closeness-трансформации: здесь считается
// пересечение множеств рынков, а не близость ординалов.

// Фиксированный штраф "недостаточно информации": у лидера не удалось
// извлечь ни одного рынка, а копир рынки указал
const unresolvedMarketScore = 0.3

// Параметры бонуса за winRate при непустом пересечении рынков
const (
	marketBoostThreshold = 0.5
	marketBoostFactor    = 0.2
)

// marketScore считает совместимость по рынкам.
//
// Политика:
//  1. Копир без предпочтений + лидер с показателями: вознаграждаем
//     общую компетентность лидера (0.6*winRatePct + 0.4*returnPct).
//  2. У лидера нет извлекаемых рынков: фиксированные 0.3.
//  3. Иначе: перекрытие по Жаккару |A∩B| / (|A|+|B|-|A∩B|);
//     при показателях и непустом пересечении - бонус
//     max(0, winRatePct-0.5)*0.2, итог ограничен 1.0.
func (e *Engine) marketScore(p *models.MatchingParameters, leader *models.User, strategies []*models.TradingStrategy, b *Baseline) float64 {
	leaderMarkets := LeaderMarkets(strategies)

	if len(p.PreferredMarkets) == 0 && leader.Performance != nil {
		winRatePct := PercentileRank(leader.Performance.WinRate, b.WinRates)
		returnPct := PercentileRank(leader.Performance.MonthlyReturn, b.MonthlyReturns)
		return 0.6*winRatePct + 0.4*returnPct
	}

	if len(leaderMarkets) == 0 {
		return unresolvedMarketScore
	}

	copierMarkets := normalizeMarkets(p.PreferredMarkets)

	intersection := 0
	for m := range copierMarkets {
		if _, ok := leaderMarkets[m]; ok {
			intersection++
		}
	}

	// union > 0: случай пустых рынков лидера отсечен выше
	union := len(copierMarkets) + len(leaderMarkets) - intersection
	score := float64(intersection) / float64(union)

	if leader.Performance != nil && intersection > 0 {
		winRatePct := PercentileRank(leader.Performance.WinRate, b.WinRates)
		score += utils.Max(0, winRatePct-marketBoostThreshold) * marketBoostFactor
		score = utils.Min(score, 1)
	}

	return score
}
