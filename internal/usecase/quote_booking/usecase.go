package quote_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	venueRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/venue"
	"github.com/jhcsc-org/jhcsc-venue/internal/pricing"
)

// UseCase пересчет стоимости черновика бронирования без записи
type UseCase struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(venueRepo VenueRepository, logger Logger) *UseCase {
	return &UseCase{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// Execute считает итог, границы оплаты и корректирует сумму платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteBooking: validation failed: %v", err)
		return nil, err
	}

	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("QuoteBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("QuoteBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	quote, err := pricing.Recompute(venue, domain.BookingDraft{
		VenueID:   req.VenueID,
		Schedules: req.Schedules,
		Payment:   req.Payment,
	})
	if err != nil {
		return nil, &ValidationError{Field: "schedules", Reason: err.Error()}
	}

	return &Response{
		VenueID:       venue.ID,
		IsFree:        venue.IsFree(),
		BillableHours: quote.BillableHours,
		TotalAmount:   quote.TotalAmount,
		MinPayment:    quote.Bounds.Min,
		MaxPayment:    quote.Bounds.Max,
		Payment:       quote.Payment,
		Clamped:       quote.Clamped,
	}, nil
}
