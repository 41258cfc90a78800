package middleware

import (
	"net"
	"net/http"
	"sync"

	"copytrade/pkg/ratelimit"
)

// clientLimiters хранит token bucket на каждого клиента.
//
// Подбор лидеров - самая дорогая операция API (полный обход
// популяции лидеров), лимит защищает сервис от одного
// агрессивного клиента.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*ratelimit.RateLimiter
	rate     float64
	burst    float64
}

func (cl *clientLimiters) get(clientIP string) *ratelimit.RateLimiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if limiter, exists := cl.limiters[clientIP]; exists {
		return limiter
	}

	limiter := ratelimit.NewRateLimiter(cl.rate, cl.burst)
	cl.limiters[clientIP] = limiter
	return limiter
}

// RateLimit возвращает middleware, ограничивающий частоту запросов
// на клиента (по IP без порта).
//
// rate - запросов в секунду, burst - допустимый всплеск.
// Превышение лимита дает 429 Too Many Requests без ожидания.
func RateLimit(rate, burst float64) func(http.Handler) http.Handler {
	cl := &clientLimiters{
		limiters: make(map[string]*ratelimit.RateLimiter),
		rate:     rate,
		burst:    burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cl.get(clientIP(r)).Allow() {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP извлекает IP клиента из RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
