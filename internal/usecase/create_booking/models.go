package create_booking

import (
	"io"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

// Options политика создания бронирований
type Options struct {
	// RequireReceiptForPaid запрещает бронировать платную площадку без чека.
	// По умолчанию бронь создается без платежа (оплата позже).
	RequireReceiptForPaid bool

	// AwaitingVerificationStatusID статус нового платежа
	AwaitingVerificationStatusID int64

	// CurrencyCode валюта платежей
	CurrencyCode string
}

// DefaultOptions политика по умолчанию
func DefaultOptions() Options {
	return Options{
		RequireReceiptForPaid:        false,
		AwaitingVerificationStatusID: domain.DefaultAwaitingVerificationStatusID,
		CurrencyCode:                 domain.DefaultCurrency,
	}
}

// Receipt прикрепленный файл чека
type Receipt struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    string                 // ID пользователя (sub из JWT)
	VenueID   int64                  // ID площадки
	Schedules []domain.ScheduleEntry // Запрошенные даты и интервалы
	Payment   *domain.PaymentDraft   // Платеж (для платных площадок)
	Receipt   *Receipt               // Чек (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID     int64
	UserID        string
	VenueID       int64
	TotalAmount   float64
	BillableHours float64
	Schedules     []*domain.BookingSchedule

	// Заполняются только если была выполнена ветка оплаты
	PaymentID     *int64
	PaymentAmount *float64
	IsDownPayment *bool
	ReceiptURL    *string
}
