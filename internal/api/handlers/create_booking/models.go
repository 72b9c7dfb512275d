package create_booking

import (
	"fmt"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	createBooking "github.com/jhcsc-org/jhcsc-venue/internal/usecase/create_booking"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

// CreateBookingRequest HTTP request model (JSON тело или поле payload multipart формы)
type CreateBookingRequest struct {
	VenueID   int64             `json:"venueId" validate:"required,gt=0"`
	Schedules []ScheduleRequest `json:"schedules" validate:"required,min=1,dive"`
	Payment   *PaymentRequest   `json:"payment,omitempty"`
}

// ScheduleRequest один интервал бронирования
type ScheduleRequest struct {
	Date      string `json:"date" validate:"required"`      // "2024-03-01"
	StartTime string `json:"startTime" validate:"required"` // "08:00"
	EndTime   string `json:"endTime" validate:"required"`   // "10:00"
}

// PaymentRequest выбранный платеж
type PaymentRequest struct {
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentModeID int64   `json:"paymentModeId" validate:"gte=0"`
	IsDownPayment bool    `json:"isDownPayment"`
}

// ScheduleResponse созданное расписание
type ScheduleResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64              `json:"id"`
	UserID        string             `json:"userId"`
	VenueID       int64              `json:"venueId"`
	TotalAmount   float64            `json:"totalAmount"`
	BillableHours float64            `json:"billableHours"`
	Status        string             `json:"status"`
	Schedules     []ScheduleResponse `json:"schedules"`
	PaymentID     *int64             `json:"paymentId,omitempty"`
	PaymentAmount *float64           `json:"paymentAmount,omitempty"`
	IsDownPayment *bool              `json:"isDownPayment,omitempty"`
	ReceiptURL    *string            `json:"receiptUrl,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	schedules := make([]domain.ScheduleEntry, 0, len(r.Schedules))
	for i, s := range r.Schedules {
		field := fmt.Sprintf("schedules[%d]", i)

		date, err := time.Parse(domain.DateFormat, s.Date)
		if err != nil {
			return nil, &handlers.FieldError{Field: field + ".date", Rule: "date"}
		}
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, &handlers.FieldError{Field: field + ".startTime", Rule: "time"}
		}
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil {
			return nil, &handlers.FieldError{Field: field + ".endTime", Rule: "time"}
		}

		schedules = append(schedules, domain.ScheduleEntry{Date: date, StartTime: start, EndTime: end})
	}

	req := &createBooking.Request{
		UserID:    userID,
		VenueID:   r.VenueID,
		Schedules: schedules,
	}
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
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	schedules := make([]ScheduleResponse, 0, len(resp.Schedules))
	for _, s := range resp.Schedules {
		schedules = append(schedules, ScheduleResponse{
			ID:        s.ID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return &BookingResponse{
		ID:            resp.BookingID,
		UserID:        resp.UserID,
		VenueID:       resp.VenueID,
		TotalAmount:   resp.TotalAmount,
		BillableHours: resp.BillableHours,
		Status:        "pending",
		Schedules:     schedules,
		PaymentID:     resp.PaymentID,
		PaymentAmount: resp.PaymentAmount,
		IsDownPayment: resp.IsDownPayment,
		ReceiptURL:    resp.ReceiptURL,
	}
}
