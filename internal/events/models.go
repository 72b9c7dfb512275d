package events

import "time"

// Топики событий бронирования
const (
	TopicBookingCreated     = "booking.created"
	TopicBookingCancelled   = "booking.cancelled"
	TopicBookingApproved    = "booking.approved"
	TopicCompensationFailed = "booking.compensation_failed"
)

const (
	metadataEventType       = "event_type"
	metadataEventOccurredAt = "occurred_at"
)

// BookingCreated бронирование и все его строки успешно записаны
type BookingCreated struct {
	BookingID   int64     `json:"booking_id"`
	UserID      string    `json:"user_id"`
	VenueID     int64     `json:"venue_id"`
	TotalAmount float64   `json:"total_amount"`
	PaymentID   *int64    `json:"payment_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusChanged бронирование отменено или подтверждено
type BookingStatusChanged struct {
	BookingID  int64     `json:"booking_id"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CompensationFailed откат шага не удался, данные требуют ручной очистки
type CompensationFailed struct {
	BookingID  int64     `json:"booking_id"`
	Action     string    `json:"action"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
