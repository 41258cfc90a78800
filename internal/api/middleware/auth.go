package middleware

import (
	"net/http"
	"strings"

	"copytrade/pkg/crypto"
)

// MetricsAuth возвращает middleware, защищающий служебные endpoints
// (метрики) статическим API ключом.
//
// Конфигурация:
// - apiKeyHash: bcrypt-хеш ключа из конфигурации (METRICS_API_KEY_HASH)
// - Пустой хеш означает, что защита выключена (локальное развертывание)
//
// Клиент передает ключ в заголовке Authorization: Bearer <key>.
// Хранится только хеш: утечка конфигурации не раскрывает сам ключ.
// Сравнение через bcrypt устойчиво к timing attacks.
func MetricsAuth(apiKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKeyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := bearerToken(r)
			if key == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="metrics"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !crypto.CheckKeyMatch(key, apiKeyHash) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken извлекает токен из заголовка Authorization
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
