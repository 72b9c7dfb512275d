package quote_booking

import "fmt"

// validateRequest пустой список расписаний допустим: итог будет нулевым.
// Границы диапазонов проверяются при пересчете.
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return &ValidationError{Field: "venue_id", Reason: "must be positive"}
	}

	for i, s := range req.Schedules {
		field := fmt.Sprintf("schedules[%d]", i)
		if err := s.StartTime.Validate(); err != nil {
			return &ValidationError{Field: field + ".start_time", Reason: err.Error()}
		}
		if err := s.EndTime.Validate(); err != nil {
			return &ValidationError{Field: field + ".end_time", Reason: err.Error()}
		}
	}

	if req.Payment != nil && req.Payment.Amount < 0 {
		return &ValidationError{Field: "payment.amount", Reason: "must not be negative"}
	}

	return nil
}
