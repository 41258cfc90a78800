package matching

import (
	"strings"

	"copytrade/internal/models"
)

// markets.go - извлечение рынка из имени стратегии
//
// Платформа кодирует рынок в имени стратегии: первый токен по пробелу,
// в верхнем регистре ("USD Scalping" -> "USD"). Эвристика изолирована
// здесь, чтобы ее можно было заменить, не трогая логику скоринга.

// MarketFromStrategyName извлекает имя рынка из имени стратегии.
//
// Возвращает пустую строку, если рынок извлечь нельзя (пустое имя,
// имя из одних пробелов).
func MarketFromStrategyName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// LeaderMarkets возвращает множество рынков лидера по его стратегиям.
//
// Токены, которые извлечь не удалось, отбрасываются.
func LeaderMarkets(strategies []*models.TradingStrategy) map[string]struct{} {
	markets := make(map[string]struct{}, len(strategies))
	for _, s := range strategies {
		if m := MarketFromStrategyName(s.Name); m != "" {
			markets[m] = struct{}{}
		}
	}
	return markets
}

// normalizeMarkets приводит предпочитаемые рынки копира к тому же
// представлению, что и рынки лидера (верхний регистр, без дублей)
func normalizeMarkets(markets []string) map[string]struct{} {
	set := make(map[string]struct{}, len(markets))
	for _, m := range markets {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m != "" {
			set[m] = struct{}{}
		}
	}
	return set
}
