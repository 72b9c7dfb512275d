package quote_booking

import (
	"errors"
	"net/http"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
	quoteBooking "github.com/jhcsc-org/jhcsc-venue/internal/usecase/quote_booking"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidField       = "некорректное значение поля"
	msgVenueNotFound      = "площадка не найдена"
)

type Handler struct {
	useCase QuoteBookingUseCase
	logger  Logger
}

func NewHandler(useCase QuoteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, ok := handlers.PathInt64(r, "venueId")
	if !ok {
		h.logger.Warn("POST /venues/{id}/quote - Invalid venue ID: %q", r.URL.Path)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.respondParseError(w, venueID, err)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(venueID)
	if err != nil {
		h.respondParseError(w, venueID, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var vErr *quoteBooking.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST /venues/{id}/quote - Validation failed: venue_id=%d, field=%s", venueID, vErr.Field)
			handlers.RespondFieldError(w, vErr.Field, vErr.Reason)

		case errors.Is(err, quoteBooking.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/quote - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		default:
			h.logger.Error("POST /venues/{id}/quote - Failed to quote: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) respondParseError(w http.ResponseWriter, venueID int64, err error) {
	h.logger.Warn("POST /venues/{id}/quote - Invalid request body: venue_id=%d, error=%v", venueID, err)

	var fErr *handlers.FieldError
	if errors.As(err, &fErr) {
		handlers.RespondFieldError(w, fErr.Field, msgInvalidField)
		return
	}
	handlers.RespondBadRequest(w, msgInvalidRequestBody)
}
