package matching

// PercentileRank возвращает долевой ранг значения внутри референсной
// выборки, число в [0,1].
//
// Правила:
//   - Пустая выборка -> 0.5 (нейтральный приор, информации нет)
//   - Иначе: количество элементов СТРОГО меньше value / размер выборки
//
// Равные значения НЕ засчитываются: значение, совпадающее с несколькими
// элементами выборки, ранжируется ниже, чем при подсчете "пополам".
// Это осознанная воспроизводимая политика разрешения ничьих, а не
// приближение - менять ее нельзя, от нее зависит итоговое ранжирование.
func PercentileRank(value float64, population []float64) float64 {
	if len(population) == 0 {
		return neutralScore
	}

	count := 0
	for _, v := range population {
		if v < value {
			count++
		}
	}

	return float64(count) / float64(len(population))
}
