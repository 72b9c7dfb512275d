package quote_booking

import "github.com/jhcsc-org/jhcsc-venue/internal/domain"

// Request черновик для пересчета
type Request struct {
	VenueID   int64
	Schedules []domain.ScheduleEntry
	Payment   *domain.PaymentDraft
}

// Response результат пересчета
type Response struct {
	VenueID       int64
	IsFree        bool
	BillableHours float64
	TotalAmount   float64
	MinPayment    float64
	MaxPayment    float64
	Payment       *domain.PaymentDraft // скорректированный платеж, если был передан
	Clamped       bool
}
