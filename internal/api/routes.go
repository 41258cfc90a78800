package api

import (
	"net/http"

	"copytrade/internal/api/handlers"
	"copytrade/internal/api/middleware"
	"copytrade/internal/service"
	"copytrade/internal/websocket"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies содержит все зависимости для API handlers
type Dependencies struct {
	SuggestionService service.SuggestionServiceInterface
	DiscoverService   service.DiscoverServiceInterface
	Hub               *websocket.Hub

	// bcrypt хэш ключа доступа к /metrics (пусто = метрики открыты)
	MetricsAPIKeyHash string

	// Лимитирование запросов к /api/v1 (0 = без лимита)
	RateLimit      float64
	RateLimitBurst float64
}

// SetupRoutes настраивает все HTTP маршруты приложения
//
// Назначение:
// Центральное место для определения всех API endpoints.
// Регистрирует handlers для каждого маршрута.
// Применяет middleware к группам маршрутов.
// Организует версионирование API (v1).
//
// Структура маршрутов:
//
// /api/v1/
//
//	├── /copiers/
//	│   └── GET /{id}/suggestions - подбор лидеров для копира
//	└── /discover/
//	    ├── GET /leaders - рейтинг лидеров
//	    └── GET /strategies - рейтинг стратегий
//
// /ws/
//
//	└── /stream - WebSocket для real-time обновлений рейтингов
//
// /metrics - Prometheus метрики (опционально за API ключом)
// /health - проверка работоспособности
//
// Middleware применяется в следующем порядке:
// 1. Recovery (для всех маршрутов)
// 2. Logging (для всех маршрутов)
// 3. CORS (для всех маршрутов)
// 4. RateLimit (только для /api/v1)
func SetupRoutes(deps *Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Глобальные middleware (применяются ко всем маршрутам)
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)
	router.Use(middleware.CORS)

	// Создание handlers с внедрением зависимостей
	var suggestionHandler *handlers.SuggestionHandler
	if deps != nil && deps.SuggestionService != nil {
		suggestionHandler = handlers.NewSuggestionHandler(deps.SuggestionService)
	}

	var discoverHandler *handlers.DiscoverHandler
	if deps != nil && deps.DiscoverService != nil {
		discoverHandler = handlers.NewDiscoverHandler(deps.DiscoverService)
	}

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	if deps != nil && deps.RateLimit > 0 {
		api.Use(middleware.RateLimit(deps.RateLimit, deps.RateLimitBurst))
	}

	// Suggestion routes
	if suggestionHandler != nil {
		api.HandleFunc("/copiers/{id}/suggestions", suggestionHandler.GetSuggestions).Methods("GET")
	}

	// Discover routes
	if discoverHandler != nil {
		api.HandleFunc("/discover/leaders", discoverHandler.GetTopLeaders).Methods("GET")
		api.HandleFunc("/discover/strategies", discoverHandler.GetTopStrategies).Methods("GET")
	}

	// WebSocket route
	if deps != nil && deps.Hub != nil {
		hub := deps.Hub
		router.HandleFunc("/ws/stream", func(w http.ResponseWriter, r *http.Request) {
			websocket.ServeWS(hub, w, r)
		})
	}

	// Prometheus метрики (за API ключом, если хэш задан)
	var metricsKeyHash string
	if deps != nil {
		metricsKeyHash = deps.MetricsAPIKeyHash
	}
	router.Handle("/metrics", middleware.MetricsAuth(metricsKeyHash)(promhttp.Handler())).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
