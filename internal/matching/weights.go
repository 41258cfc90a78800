package matching

import "copytrade/internal/models"

// Weights - веса четырех sub-score для конкретного копира.
//
// По построению сумма всегда равна 1.0: базовые 4 x 0.25 и две
// независимые корректировки с фиксированными +/-0.10, которые
// перекладывают вес внутри пары, не меняя сумму. Нормализация
// после корректировок не нужна.
type Weights struct {
	Risk      float64 `json:"risk_weight"`
	Style     float64 `json:"style_weight"`
	Market    float64 `json:"market_weight"`
	Frequency float64 `json:"frequency_weight"`
}

// Порог просадки, ниже которого копир считается строгим к риску
const strictDrawdownThreshold = 15.0

// SelectWeights выводит веса sub-score из предпочтений копира.
//
// Правила:
//   - база: каждый вес 0.25
//   - maxDrawdown < 15: riskWeight +0.10, styleWeight -0.10
//     (жесткая терпимость к риску доминирует над стилем)
//   - preferredMarkets непуст: marketWeight +0.10, frequencyWeight -0.10
//     (явное предпочтение рынков доминирует над частотой)
//
// Корректировки независимы, могут сработать обе.
func SelectWeights(p *models.MatchingParameters) Weights {
	w := Weights{
		Risk:      0.25,
		Style:     0.25,
		Market:    0.25,
		Frequency: 0.25,
	}

	if p.MaxDrawdown < strictDrawdownThreshold {
		w.Risk += 0.10
		w.Style -= 0.10
	}

	if len(p.PreferredMarkets) > 0 {
		w.Market += 0.10
		w.Frequency -= 0.10
	}

	return w
}

// Sum возвращает сумму весов (для инвариант-проверок в тестах)
func (w Weights) Sum() float64 {
	return w.Risk + w.Style + w.Market + w.Frequency
}
