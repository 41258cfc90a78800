package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Prometheus метрики движка подбора
// ============================================================
//
// Использование:
// - Grafana дашборды (латентность выдачи, доля деградаций)
// - Алерты на рост neutral_fallbacks_total: резкий рост означает,
//   что у хранилища пропали данные по лидерам

// SuggestionLatency - время полного построения выдачи для одного копира
var SuggestionLatency = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "copytrade",
		Subsystem: "matching",
		Name:      "suggestion_duration_seconds",
		Help:      "End-to-end latency of building a suggestion list",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
)

// LeadersScored - количество оцененных кандидатов
var LeadersScored = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "copytrade",
		Subsystem: "matching",
		Name:      "leaders_scored_total",
		Help:      "Total number of leader candidates scored",
	},
)

// NeutralFallbacks - деградации к нейтральному значению по измерениям
var NeutralFallbacks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "copytrade",
		Subsystem: "matching",
		Name:      "neutral_fallbacks_total",
		Help:      "Sub-score computations degraded to the neutral default",
	},
	[]string{"dimension"}, // risk, style, frequency
)

// SuggestionRequests - запросы выдачи по результату
var SuggestionRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "copytrade",
		Subsystem: "matching",
		Name:      "suggestion_requests_total",
		Help:      "Suggestion requests by outcome",
	},
	[]string{"outcome"}, // success, not_found, error
)
