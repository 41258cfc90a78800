package matching

import (
	"testing"

	"copytrade/internal/models"
)

func TestMarketScore(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name       string
		params     models.MatchingParameters
		leader     models.User
		strategies []*models.TradingStrategy
		baseline   Baseline
		expected   float64
	}{
		{
			name:   "no copier preferences rewards competence",
			params: models.MatchingParameters{},
			leader: models.User{
				ID:          "l-1",
				Performance: &models.LeaderPerformance{WinRate: 70.0, MonthlyReturn: 5.0},
			},
			baseline: Baseline{
				WinRates:       []float64{70.0, 50.0},
				MonthlyReturns: []float64{5.0, 1.0},
			},
			// 0.6*0.5 + 0.4*0.5
			expected: 0.5,
		},
		{
			name:     "no copier preferences and no performance gives penalty",
			params:   models.MatchingParameters{},
			leader:   models.User{ID: "l-1"},
			expected: unresolvedMarketScore,
		},
		{
			name:   "no leader markets gives penalty",
			params: models.MatchingParameters{PreferredMarkets: []string{"USD"}},
			leader: models.User{
				ID:          "l-1",
				Performance: &models.LeaderPerformance{WinRate: 90.0},
			},
			strategies: nil,
			expected:   unresolvedMarketScore,
		},
		{
			name:   "full overlap without performance",
			params: models.MatchingParameters{PreferredMarkets: []string{"usd"}},
			leader: models.User{ID: "l-1"},
			strategies: []*models.TradingStrategy{
				{Name: "USD Scalping"},
			},
			expected: 1.0,
		},
		{
			name:   "partial overlap jaccard",
			params: models.MatchingParameters{PreferredMarkets: []string{"USD", "BTC"}},
			leader: models.User{ID: "l-1"},
			strategies: []*models.TradingStrategy{
				{Name: "USD Scalping"},
				{Name: "GOLD Position"},
			},
			// |{USD}| / (2 + 2 - 1) = 1/3
			expected: 1.0 / 3.0,
		},
		{
			name:   "no overlap",
			params: models.MatchingParameters{PreferredMarkets: []string{"JPY"}},
			leader: models.User{ID: "l-1"},
			strategies: []*models.TradingStrategy{
				{Name: "USD Scalping"},
			},
			expected: 0.0,
		},
		{
			name:   "win rate boost on overlap",
			params: models.MatchingParameters{PreferredMarkets: []string{"USD", "BTC"}},
			leader: models.User{
				ID:          "l-1",
				Performance: &models.LeaderPerformance{WinRate: 90.0},
			},
			strategies: []*models.TradingStrategy{
				{Name: "USD Scalping"},
				{Name: "GOLD Position"},
			},
			baseline: Baseline{WinRates: []float64{90.0, 50.0, 40.0, 30.0}},
			// 1/3 + max(0, 0.75-0.5)*0.2 = 1/3 + 0.05
			expected: 1.0/3.0 + 0.05,
		},
		{
			name:   "boost capped at one",
			params: models.MatchingParameters{PreferredMarkets: []string{"USD"}},
			leader: models.User{
				ID:          "l-1",
				Performance: &models.LeaderPerformance{WinRate: 90.0},
			},
			strategies: []*models.TradingStrategy{
				{Name: "USD Scalping"},
			},
			baseline: Baseline{WinRates: []float64{90.0, 50.0}},
			expected: 1.0,
		},
		{
			name:   "no boost without overlap",
			params: models.MatchingParameters{PreferredMarkets: []string{"JPY"}},
			leader: models.User{
				ID:          "l-1",
				Performance: &models.LeaderPerformance{WinRate: 90.0},
			},
			strategies: []*models.TradingStrategy{
				{Name: "USD Scalping"},
			},
			baseline: Baseline{WinRates: []float64{90.0, 50.0}},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.marketScore(&tt.params, &tt.leader, tt.strategies, &tt.baseline)
			if !floatEquals(result, tt.expected) {
				t.Errorf("marketScore = %f, expected %f", result, tt.expected)
			}
			if result < 0 || result > 1 {
				t.Errorf("marketScore = %f, out of [0,1]", result)
			}
		})
	}
}
