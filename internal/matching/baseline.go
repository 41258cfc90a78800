package matching

import "copytrade/internal/models"

// Baseline - референсное распределение показателей по всем
// лидерам-кандидатам. Используется только как выборка для
// PercentileRank, не для скоринга.
//
// Инвариант: массивы содержат только неотрицательные значения,
// отрицательные показатели в выборку не попадают.
type Baseline struct {
	WinRates       []float64
	MonthlyReturns []float64
	TradeCounts    []float64
}

// BuildBaseline собирает референсную выборку по популяции лидеров.
//
// Это отдельный упрощенный обход (без блендинга 0.6/0.4): для каждого
// лидера берутся либо его агрегированные показатели, либо - при их
// отсутствии - производные от стратегий (средний winRate и средний
// totalReturn по стратегиям с показателями; количество сделок из
// стратегий не выводится). Лидер без того и другого в выборку не
// вносит ничего.
func BuildBaseline(leaders []*models.User, strategies map[string][]*models.TradingStrategy) *Baseline {
	b := &Baseline{
		WinRates:       make([]float64, 0, len(leaders)),
		MonthlyReturns: make([]float64, 0, len(leaders)),
		TradeCounts:    make([]float64, 0, len(leaders)),
	}

	for _, leader := range leaders {
		if leader.Performance != nil {
			b.WinRates = appendNonNegative(b.WinRates, leader.Performance.WinRate)
			b.MonthlyReturns = appendNonNegative(b.MonthlyReturns, leader.Performance.MonthlyReturn)
			b.TradeCounts = appendNonNegative(b.TradeCounts, float64(leader.Performance.TotalTrades))
			continue
		}

		var sumWinRate, sumReturn float64
		n := 0
		for _, s := range strategies[leader.ID] {
			if s.Performance == nil {
				continue
			}
			sumWinRate += s.Performance.WinRate
			sumReturn += s.Performance.TotalReturn
			n++
		}
		if n == 0 {
			continue
		}

		b.WinRates = appendNonNegative(b.WinRates, sumWinRate/float64(n))
		b.MonthlyReturns = appendNonNegative(b.MonthlyReturns, sumReturn/float64(n))
	}

	return b
}

// appendNonNegative добавляет значение в выборку, отбрасывая отрицательные
func appendNonNegative(population []float64, value float64) []float64 {
	if value < 0 {
		return population
	}
	return append(population, value)
}
