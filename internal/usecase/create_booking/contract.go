package create_booking

import (
	"context"
	"io"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/internal/events"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписаний бронирования
type ScheduleRepository interface {
	CreateMany(ctx context.Context, bookingID int64, entries []domain.ScheduleEntry) ([]*domain.BookingSchedule, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
	CreateReference(ctx context.Context, ref *domain.PaymentReference) (*domain.PaymentReference, error)
}

// ReceiptStorage интерфейс хранилища чеков
type ReceiptStorage interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader) error
	PublicURL(path string) string
	Remove(ctx context.Context, paths ...string) error
}

// EventPublisher интерфейс публикации событий бронирования
type EventPublisher interface {
	BookingCreated(ctx context.Context, evt events.BookingCreated) error
	CompensationFailed(ctx context.Context, evt events.CompensationFailed) error
}

// StepRecorder счетчики шагов и компенсаций (*metrics.Metrics)
type StepRecorder interface {
	ObserveStep(step string, err error)
	ObserveCompensation(action string, err error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopRecorder struct{}

func (nopRecorder) ObserveStep(string, error)         {}
func (nopRecorder) ObserveCompensation(string, error) {}
