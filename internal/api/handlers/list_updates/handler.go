package list_updates

import (
	"errors"
	"net/http"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
	"github.com/jhcsc-org/jhcsc-venue/internal/api/middleware"
	"github.com/jhcsc-org/jhcsc-venue/internal/service/updates"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidSince  = "некорректный формат since, ожидается RFC3339"
)

type Handler struct {
	service UpdatesService
	logger  Logger
}

func NewHandler(service UpdatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/updates?record=&since=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /updates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &updates.ListRequest{
		UserID:       userID,
		RecordSearch: r.URL.Query().Get("record"),
	}
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /updates - Invalid since: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidSince)
			return
		}
		req.Since = &since
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, updates.ErrInvalidInput) {
			h.logger.Warn("GET /updates - Invalid query: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /updates - Failed to list updates: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /updates - Updates retrieved successfully: user_id=%s, count=%d", userID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
