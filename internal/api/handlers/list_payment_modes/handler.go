package list_payment_modes

import (
	"net/http"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/payment-modes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	modes, err := h.service.ListPaymentModes(r.Context())
	if err != nil {
		h.logger.Error("GET /payment-modes - Failed to list payment modes: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromPaymentModes(modes))
}

// HandleVenueTypes GET /api/v1/venue-types
func (h *Handler) HandleVenueTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListVenueTypes(r.Context())
	if err != nil {
		h.logger.Error("GET /venue-types - Failed to list venue types: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromVenueTypes(types))
}
