package matching

import (
	"testing"

	"copytrade/internal/models"
)

func TestSelectWeights(t *testing.T) {
	tests := []struct {
		name     string
		params   models.MatchingParameters
		expected Weights
	}{
		{
			name: "base weights",
			params: models.MatchingParameters{
				MaxDrawdown: 20.0,
			},
			expected: Weights{Risk: 0.25, Style: 0.25, Market: 0.25, Frequency: 0.25},
		},
		{
			name: "strict drawdown shifts risk over style",
			params: models.MatchingParameters{
				MaxDrawdown: 10.0,
			},
			expected: Weights{Risk: 0.35, Style: 0.15, Market: 0.25, Frequency: 0.25},
		},
		{
			name: "preferred markets shift market over frequency",
			params: models.MatchingParameters{
				MaxDrawdown:      20.0,
				PreferredMarkets: []string{"USD"},
			},
			expected: Weights{Risk: 0.25, Style: 0.25, Market: 0.35, Frequency: 0.15},
		},
		{
			name: "both adjustments",
			params: models.MatchingParameters{
				MaxDrawdown:      10.0,
				PreferredMarkets: []string{"USD", "BTC"},
			},
			expected: Weights{Risk: 0.35, Style: 0.15, Market: 0.35, Frequency: 0.15},
		},
		{
			name: "drawdown exactly at threshold is not strict",
			params: models.MatchingParameters{
				MaxDrawdown: 15.0,
			},
			expected: Weights{Risk: 0.25, Style: 0.25, Market: 0.25, Frequency: 0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := SelectWeights(&tt.params)

			if !floatEquals(w.Risk, tt.expected.Risk) ||
				!floatEquals(w.Style, tt.expected.Style) ||
				!floatEquals(w.Market, tt.expected.Market) ||
				!floatEquals(w.Frequency, tt.expected.Frequency) {
				t.Errorf("SelectWeights() = %+v, expected %+v", w, tt.expected)
			}

			if !floatEquals(w.Sum(), 1.0) {
				t.Errorf("weights sum to %f, expected 1.0", w.Sum())
			}
		})
	}
}
