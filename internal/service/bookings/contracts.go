package bookings

import (
	"context"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SoftDelete(ctx context.Context, id int64) error
	Confirm(ctx context.Context, id int64) error
}

// ViewRepository интерфейс чтения представлений бронирований
type ViewRepository interface {
	List(ctx context.Context, filter domain.BookingViewFilter) ([]*domain.BookingView, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingView, error)
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ConfirmByBooking(ctx context.Context, bookingID int64, fromStatusID, toStatusID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	BookingCancelled(ctx context.Context, evt events.BookingStatusChanged) error
	BookingApproved(ctx context.Context, evt events.BookingStatusChanged) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
