package utils

import (
	"math"
)

// math.go - математические утилиты скоринга
//
// Назначение:
// Вспомогательные функции для вычисления баллов совместимости и
// композитных рейтингов. Все функции чистые (pure functions) без
// побочных эффектов.
//
// Функции:
// - Mean: среднее арифметическое выборки
// - WeightedAverage: взвешенное среднее
// - Clamp: ограничение значения диапазоном
// - Abs/Min/Max: обертки стандартной математики

// Mean возвращает среднее арифметическое выборки.
//
// Пустая выборка дает 0 - вызывающий код сам решает, что означает
// отсутствие данных (движок подбора в таких случаях вообще не зовет
// Mean, а подставляет нейтральное значение).
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// WeightedAverage вычисляет взвешенное среднее.
//
// Формула:
//
//	avg = Σ(value_i × weight_i) / Σ(weight_i)
//
// Возвращает 0 при некорректных входных данных (разная длина слайсов,
// пустые слайсы, нулевая сумма весов). Отрицательные веса пропускаются.
func WeightedAverage(values, weights []float64) float64 {
	if len(values) == 0 || len(weights) == 0 {
		return 0
	}
	if len(values) != len(weights) {
		return 0
	}

	var sumWeighted, sumWeights float64
	for i := range values {
		if weights[i] < 0 {
			continue // Пропускаем отрицательные веса
		}
		sumWeighted += values[i] * weights[i]
		sumWeights += weights[i]
	}

	if sumWeights == 0 {
		return 0
	}
	return sumWeighted / sumWeights
}

// Abs возвращает абсолютное значение числа.
func Abs(x float64) float64 {
	return math.Abs(x)
}

// Min возвращает минимум из двух чисел.
func Min(a, b float64) float64 {
	return math.Min(a, b)
}

// Max возвращает максимум из двух чисел.
func Max(a, b float64) float64 {
	return math.Max(a, b)
}

// Clamp ограничивает значение диапазоном [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
