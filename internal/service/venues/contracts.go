package venues

import (
	"context"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, int64, error)
	ListTypes(ctx context.Context) ([]*domain.VenueType, error)
}

// PaymentModeRepository интерфейс справочника способов оплаты
type PaymentModeRepository interface {
	ListModes(ctx context.Context) ([]*domain.PaymentMode, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
