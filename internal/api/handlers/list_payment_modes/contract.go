package list_payment_modes

import (
	"context"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

type VenueService interface {
	ListPaymentModes(ctx context.Context) ([]*domain.PaymentMode, error)
	ListVenueTypes(ctx context.Context) ([]*domain.VenueType, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
