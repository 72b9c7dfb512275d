package create_booking

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/internal/pricing"
)

// validateRequest проверяет форму черновика, без обращения к хранилищам
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return invalid("user_id", "is required")
	}

	if req.VenueID <= 0 {
		return invalid("venue_id", "must be positive")
	}

	if len(req.Schedules) == 0 {
		return invalid("schedules", "at least one schedule is required")
	}

	for i, s := range req.Schedules {
		if err := validateSchedule(i, s); err != nil {
			return err
		}
	}

	if req.Payment != nil && req.Payment.Amount < 0 {
		return invalid("payment.amount", "must not be negative")
	}

	if req.Receipt != nil {
		if receiptExtension(req.Receipt.FileName) == "" {
			return invalid("receipt", "file name must have an extension")
		}
		if req.Receipt.Size > domain.MaxReceiptSize {
			return invalid("receipt", "file is larger than %d bytes", domain.MaxReceiptSize)
		}
		if req.Receipt.Body == nil {
			return invalid("receipt", "file is empty")
		}
	}

	return nil
}

func validateSchedule(i int, s domain.ScheduleEntry) error {
	field := fmt.Sprintf("schedules[%d]", i)

	if s.Date.IsZero() {
		return invalid(field+".date", "is required")
	}

	if err := s.StartTime.Validate(); err != nil {
		return invalid(field+".start_time", "%v", err)
	}

	if err := s.EndTime.Validate(); err != nil {
		return invalid(field+".end_time", "%v", err)
	}

	if !s.StartTime.IsBefore(s.EndTime) {
		return invalid(field+".end_time", "must be after start time")
	}

	hours, err := pricing.HoursBetween(s.StartTime, s.EndTime)
	if err != nil {
		return invalid(field, "%v", err)
	}

	if hours < domain.MinScheduleHours {
		return invalid(field+".end_time", "schedule must be at least %.0f hour", domain.MinScheduleHours)
	}

	return nil
}

// validatePayment проверяет платеж относительно цены площадки.
// Возвращает true, если нужно выполнять ветку оплаты.
func validatePayment(req *Request, venue *domain.Venue, bounds pricing.Bounds, opts Options) (bool, error) {
	if venue.IsFree() {
		return false, nil
	}

	if req.Receipt == nil {
		if opts.RequireReceiptForPaid {
			return false, invalid("receipt", "is required for paid venues")
		}
		return false, nil
	}

	if req.Payment == nil {
		return false, invalid("payment", "is required when a receipt is attached")
	}

	if req.Payment.PaymentModeID <= 0 {
		return false, invalid("payment.payment_mode_id", "is required")
	}

	if !bounds.Contains(req.Payment.Amount) {
		return false, invalid("payment.amount", "must be between %.2f and %.2f", bounds.Min, bounds.Max)
	}

	return true, nil
}

// receiptExtension расширение файла без точки, регистр сохраняется
func receiptExtension(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

// receiptPath путь чека в бакете, детерминированный по ID бронирования
func receiptPath(bookingID int64, fileName string) string {
	return fmt.Sprintf(domain.ReceiptPathFormat, bookingID, receiptExtension(fileName))
}
