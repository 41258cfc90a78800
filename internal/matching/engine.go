package matching

import (
	"go.uber.org/zap"

	"copytrade/internal/models"
	"copytrade/pkg/utils"
)

// Engine - движок оценки совместимости копир/лидер.
//
// Назначение:
// Чистое вычислительное ядро сервиса подбора лидеров. Получает уже
// загруженные снимки данных (лидер, его стратегии, референсная выборка)
// и считает четыре sub-score плюс взвешенный агрегат.
//
// Свойства:
// - Детерминированность: одинаковые входы дают одинаковый балл
// - Нет состояния между вызовами, безопасен для конкурентного
//   использования из нескольких горутин
// - Никогда не возвращает ошибку: деградация данных сворачивается
//   в нейтральные значения на месте (политика "never fail the batch")
type Engine struct {
	log *zap.Logger
}

// NewEngine создает движок. nil-логгер заменяется на no-op.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Score считает совместимость одного лидера с предпочтениями копира.
//
// Возвращает разбивку по измерениям и взвешенный агрегат
// sum(weight_i * score_i). Агрегат лежит в [0,1], потому что каждый
// sub-score в [0,1] и веса суммируются в 1.
func (e *Engine) Score(p *models.MatchingParameters, leader *models.User, strategies []*models.TradingStrategy, b *Baseline, w Weights) (models.MatchDetails, float64) {
	details := models.MatchDetails{
		RiskScore:      e.riskScore(p, leader, strategies, b),
		StyleScore:     e.styleScore(p, leader, strategies, b),
		MarketScore:    e.marketScore(p, leader, strategies, b),
		FrequencyScore: e.frequencyScore(p, leader, strategies, b),
	}

	score := w.Risk*details.RiskScore +
		w.Style*details.StyleScore +
		w.Market*details.MarketScore +
		w.Frequency*details.FrequencyScore

	LeadersScored.Inc()
	e.log.Debug("leader scored",
		utils.Leader(leader.ID),
		utils.Score(score))

	return details, score
}

// warnNeutral логирует деградацию к нейтральному значению
func (e *Engine) warnNeutral(leaderID, dimension string) {
	NeutralFallbacks.WithLabelValues(dimension).Inc()
	e.log.Warn("leader has no strategies and no performance, using neutral score",
		utils.Leader(leaderID),
		utils.Dimension(dimension))
}
