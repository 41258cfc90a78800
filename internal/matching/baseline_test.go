package matching

import (
	"testing"

	"copytrade/internal/models"
)

func TestBuildBaseline(t *testing.T) {
	leaders := []*models.User{
		{
			ID: "leader-perf",
			Performance: &models.LeaderPerformance{
				WinRate:       70.0,
				MonthlyReturn: 5.0,
				TotalTrades:   200,
			},
		},
		{
			ID: "leader-strategies",
		},
		{
			ID: "leader-empty",
		},
	}

	strategies := map[string][]*models.TradingStrategy{
		"leader-strategies": {
			{
				ID:          "s-1",
				Performance: &models.StrategyPerformance{WinRate: 60.0, TotalReturn: 10.0},
			},
			{
				ID:          "s-2",
				Performance: &models.StrategyPerformance{WinRate: 40.0, TotalReturn: 20.0},
			},
			{
				ID: "s-3", // без показателей, в среднее не входит
			},
		},
	}

	b := BuildBaseline(leaders, strategies)

	if len(b.WinRates) != 2 {
		t.Fatalf("expected 2 win rates, got %d", len(b.WinRates))
	}
	if !floatEquals(b.WinRates[0], 70.0) {
		t.Errorf("expected first win rate 70, got %f", b.WinRates[0])
	}
	if !floatEquals(b.WinRates[1], 50.0) {
		t.Errorf("expected strategy-derived win rate 50, got %f", b.WinRates[1])
	}

	if len(b.MonthlyReturns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(b.MonthlyReturns))
	}
	if !floatEquals(b.MonthlyReturns[1], 15.0) {
		t.Errorf("expected strategy-derived return 15, got %f", b.MonthlyReturns[1])
	}

	// Количество сделок выводится только из агрегированных показателей
	if len(b.TradeCounts) != 1 {
		t.Fatalf("expected 1 trade count, got %d", len(b.TradeCounts))
	}
	if !floatEquals(b.TradeCounts[0], 200.0) {
		t.Errorf("expected trade count 200, got %f", b.TradeCounts[0])
	}
}

func TestBuildBaselineExcludesNegative(t *testing.T) {
	leaders := []*models.User{
		{
			ID: "leader-1",
			Performance: &models.LeaderPerformance{
				WinRate:       55.0,
				MonthlyReturn: -3.0, // убыточный месяц не попадает в выборку
				TotalTrades:   100,
			},
		},
	}

	b := BuildBaseline(leaders, nil)

	if len(b.WinRates) != 1 {
		t.Errorf("expected 1 win rate, got %d", len(b.WinRates))
	}
	if len(b.MonthlyReturns) != 0 {
		t.Errorf("expected negative return excluded, got %d entries", len(b.MonthlyReturns))
	}
	if len(b.TradeCounts) != 1 {
		t.Errorf("expected 1 trade count, got %d", len(b.TradeCounts))
	}
}

func TestBuildBaselineEmptyPopulation(t *testing.T) {
	b := BuildBaseline(nil, nil)

	if len(b.WinRates) != 0 || len(b.MonthlyReturns) != 0 || len(b.TradeCounts) != 0 {
		t.Error("expected empty baseline for empty population")
	}
}
