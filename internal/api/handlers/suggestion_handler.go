package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"copytrade/internal/service"
	"copytrade/pkg/utils"
)

// SuggestionHandler обрабатывает HTTP запросы подбора лидеров.
//
// Endpoints:
// - GET /api/v1/copiers/{id}/suggestions - топ-5 лидеров для копира
//
// Коды ответов:
// - 200: список рекомендаций (может быть пустым)
// - 400: некорректный идентификатор копира
// - 404: копир не найден или не заполнил параметры подбора
// - 500: сбой хранилища или внутренняя ошибка
type SuggestionHandler struct {
	suggestionService service.SuggestionServiceInterface
}

// NewSuggestionHandler создает новый SuggestionHandler с внедрением зависимостей.
func NewSuggestionHandler(suggestionService service.SuggestionServiceInterface) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
	}
}

// GetSuggestions возвращает рекомендации лидеров для копира.
//
// GET /api/v1/copiers/{id}/suggestions
//
// Response 200 OK:
//
//	{
//	  "suggestions": [
//	    {
//	      "leader_id": "leader-1",
//	      "username": "alice",
//	      "copiers": 12,
//	      "total_profit": 1500.0,
//	      "compatibility_score": 0.82,
//	      "match_details": {
//	        "risk_score": 1.0,
//	        "style_score": 0.5,
//	        "market_score": 0.9,
//	        "frequency_score": 0.5
//	      },
//	      "strategies": [...]
//	    }
//	  ],
//	  "total_results": 1
//	}
//
// Response 404 Not Found:
//
//	{"error": "copier not found"}
func (h *SuggestionHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	// Проверяем, что сервис инициализирован
	if h.suggestionService == nil {
		writeError(w, http.StatusInternalServerError, "suggestion service not initialized", "")
		return
	}

	copierID := utils.NormalizeID(mux.Vars(r)["id"])
	if err := utils.ValidateID(copierID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid copier id", err.Error())
		return
	}

	list, err := h.suggestionService.GetLeaderSuggestions(r.Context(), copierID)
	if err != nil {
		// Двухуровневая классификация: отсутствие копира или его
		// параметров - это 404, все остальное - 500
		switch {
		case errors.Is(err, service.ErrCopierNotFound):
			writeError(w, http.StatusNotFound, "copier not found", "")
		case errors.Is(err, service.ErrPreferencesNotSet):
			writeError(w, http.StatusNotFound, "copier has no matching preferences", "")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get suggestions", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, list)
}
