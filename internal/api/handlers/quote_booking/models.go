package quote_booking

import (
	"fmt"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	quoteBooking "github.com/jhcsc-org/jhcsc-venue/internal/usecase/quote_booking"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

// QuoteRequest HTTP request model: текущее состояние формы
type QuoteRequest struct {
	Schedules []ScheduleRequest `json:"schedules" validate:"dive"`
	Payment   *PaymentRequest   `json:"payment,omitempty"`
}

// ScheduleRequest интервал формы
type ScheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// PaymentRequest выбранная сумма
type PaymentRequest struct {
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentModeID int64   `json:"paymentModeId"`
	IsDownPayment bool    `json:"isDownPayment"`
}

// PaymentResponse скорректированный платеж
type PaymentResponse struct {
	Amount        float64 `json:"amount"`
	PaymentModeID int64   `json:"paymentModeId"`
	IsDownPayment bool    `json:"isDownPayment"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	VenueID       int64            `json:"venueId"`
	IsFree        bool             `json:"isFree"`
	BillableHours float64          `json:"billableHours"`
	TotalAmount   float64          `json:"totalAmount"`
	MinPayment    float64          `json:"minPayment"`
	MaxPayment    float64          `json:"maxPayment"`
	Payment       *PaymentResponse `json:"payment,omitempty"`
	Clamped       bool             `json:"clamped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата не влияет на расчет и может быть пустой.
func (r *QuoteRequest) ToUseCaseRequest(venueID int64) (*quoteBooking.Request, error) {
	schedules := make([]domain.ScheduleEntry, 0, len(r.Schedules))
	for i, s := range r.Schedules {
		field := fmt.Sprintf("schedules[%d]", i)

		var entry domain.ScheduleEntry
		if s.Date != "" {
			date, err := time.Parse(domain.DateFormat, s.Date)
			if err != nil {
				return nil, &handlers.FieldError{Field: field + ".date", Rule: "date"}
			}
			entry.Date = date
		}

		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, &handlers.FieldError{Field: field + ".startTime", Rule: "time"}
		}
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil {
			return nil, &handlers.FieldError{Field: field + ".endTime", Rule: "time"}
		}
		entry.StartTime, entry.EndTime = start, end

		schedules = append(schedules, entry)
	}

	req := &quoteBooking.Request{VenueID: venueID, Schedules: schedules}
	if r.Payment != nil {
		req.Payment = &domain.PaymentDraft{
			Amount:        r.Payment.Amount,
			PaymentModeID: r.Payment.PaymentModeID,
			IsDownPayment: r.Payment.IsDownPayment,
		}
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteBooking.Response) *QuoteResponse {
	out := &QuoteResponse{
		VenueID:       resp.VenueID,
		IsFree:        resp.IsFree,
		BillableHours: resp.BillableHours,
		TotalAmount:   resp.TotalAmount,
		MinPayment:    resp.MinPayment,
		MaxPayment:    resp.MaxPayment,
		Clamped:       resp.Clamped,
	}
	if resp.Payment != nil {
		out.Payment = &PaymentResponse{
			Amount:        resp.Payment.Amount,
			PaymentModeID: resp.Payment.PaymentModeID,
			IsDownPayment: resp.Payment.IsDownPayment,
		}
	}
	return out
}
