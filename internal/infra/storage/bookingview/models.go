package bookingview

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

// scheduleJSON элемент колонки booking_schedules
type scheduleJSON struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func decodeSchedules(bookingID int64, raw []byte) ([]domain.BookingSchedule, error) {
	if len(raw) == 0 {
		return []domain.BookingSchedule{}, nil
	}

	var items []scheduleJSON
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: booking_schedules: %v", ErrDecodeJSON, err)
	}

	schedules := make([]domain.BookingSchedule, 0, len(items))
	for _, item := range items {
		date, err := time.Parse(domain.DateFormat, item.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: booking_schedules date %q: %v", ErrDecodeJSON, item.Date, err)
		}
		start, err := types.NewTimeStringFromString(item.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: booking_schedules start_time: %v", ErrDecodeJSON, err)
		}
		end, err := types.NewTimeStringFromString(item.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: booking_schedules end_time: %v", ErrDecodeJSON, err)
		}

		schedules = append(schedules, domain.BookingSchedule{
			ID:        item.ID,
			BookingID: bookingID,
			Date:      date,
			StartTime: start,
			EndTime:   end,
		})
	}

	return schedules, nil
}

func decodePayments(raw []byte) ([]domain.PaymentSummary, error) {
	if len(raw) == 0 {
		return []domain.PaymentSummary{}, nil
	}

	var payments []domain.PaymentSummary
	if err := json.Unmarshal(raw, &payments); err != nil {
		return nil, fmt.Errorf("%w: payments: %v", ErrDecodeJSON, err)
	}
	if payments == nil {
		payments = []domain.PaymentSummary{}
	}
	return payments, nil
}
