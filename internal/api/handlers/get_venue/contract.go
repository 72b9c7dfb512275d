package get_venue

import (
	"context"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

type VenueService interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
