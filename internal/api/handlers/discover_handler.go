package handlers

import (
	"net/http"
	"strconv"

	"copytrade/internal/service"
	"copytrade/pkg/utils"
)

// Ограничения выдачи рейтингов
const (
	defaultRankingLimit = 5
	maxRankingLimit     = 20
)

// DiscoverHandler обрабатывает HTTP запросы публичных рейтингов.
//
// Endpoints:
// - GET /api/v1/discover/leaders?limit=5 - топ лидеров платформы
// - GET /api/v1/discover/strategies?limit=5 - топ стратегий платформы
type DiscoverHandler struct {
	discoverService service.DiscoverServiceInterface
}

// NewDiscoverHandler создает новый DiscoverHandler с внедрением зависимостей.
func NewDiscoverHandler(discoverService service.DiscoverServiceInterface) *DiscoverHandler {
	return &DiscoverHandler{
		discoverService: discoverService,
	}
}

// GetTopLeaders возвращает рейтинг лидеров.
//
// GET /api/v1/discover/leaders?limit=5
//
// Query Parameters:
// - limit (optional): размер выдачи (по умолчанию 5, максимум 20)
//
// Response 200 OK:
//
//	[
//	  {"leader_id": "leader-1", "username": "alice", "score": 0.87, "followers": 120},
//	  {"leader_id": "leader-2", "username": "bob", "score": 0.64, "followers": 45}
//	]
func (h *DiscoverHandler) GetTopLeaders(w http.ResponseWriter, r *http.Request) {
	if h.discoverService == nil {
		writeError(w, http.StatusInternalServerError, "discover service not initialized", "")
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit", err.Error())
		return
	}

	ranks, err := h.discoverService.GetTopLeaders(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get top leaders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ranks)
}

// GetTopStrategies возвращает рейтинг стратегий.
//
// GET /api/v1/discover/strategies?limit=5
func (h *DiscoverHandler) GetTopStrategies(w http.ResponseWriter, r *http.Request) {
	if h.discoverService == nil {
		writeError(w, http.StatusInternalServerError, "discover service not initialized", "")
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit", err.Error())
		return
	}

	ranks, err := h.discoverService.GetTopStrategies(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get top strategies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ranks)
}

// parseLimit читает query-параметр limit с валидацией
func parseLimit(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return defaultRankingLimit, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, err
	}
	if err := utils.ValidateLimit(limit, maxRankingLimit); err != nil {
		return 0, err
	}

	return limit, nil
}
