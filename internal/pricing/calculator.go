// Package pricing converts booking schedules and an hourly rate into money amounts.
//
// All derived values go through Round2 so that bound comparisons never fail
// because of binary floating-point drift.
package pricing

import (
	"fmt"
	"math"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

// epsilon is the double-precision machine epsilon (2^-52)
const epsilon = 2.220446049250313e-16

// Bounds acceptable payment range for a booking
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether amount lies within [Min, Max]
func (b Bounds) Contains(amount float64) bool {
	return amount >= b.Min && amount <= b.Max
}

// Quote result of a recompute
type Quote struct {
	BillableHours float64
	TotalAmount   float64
	Bounds        Bounds
	Payment       *domain.PaymentDraft
	Clamped       bool
}

// Round2 rounds half-up to 2 decimal places
func Round2(v float64) float64 {
	return math.Floor((v+epsilon)*100+0.5) / 100
}

// HoursBetween duration between two HH:MM times in hours, rounded to 2 decimals.
// The caller guarantees end > start.
func HoursBetween(start, end types.TimeString) (float64, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return 0, fmt.Errorf("start time: %w", err)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return 0, fmt.Errorf("end time: %w", err)
	}
	return Round2(float64(endMin-startMin) / 60), nil
}

// BillableHours each schedule is billed for at least one hour
func BillableHours(schedules []domain.ScheduleEntry) (float64, error) {
	var total float64
	for i, s := range schedules {
		hours, err := HoursBetween(s.StartTime, s.EndTime)
		if err != nil {
			return 0, fmt.Errorf("schedule %d: %w", i, err)
		}
		total += math.Max(hours, domain.MinScheduleHours)
	}
	return Round2(total), nil
}

// TotalAmount rate * billable hours; zero without a positive rate
func TotalAmount(rate *float64, schedules []domain.ScheduleEntry) (float64, error) {
	if rate == nil || *rate <= 0 {
		return 0, nil
	}
	hours, err := BillableHours(schedules)
	if err != nil {
		return 0, err
	}
	return Round2(*rate * hours), nil
}

// VenueTotal total for the venue; free venues always cost zero
func VenueTotal(venue *domain.Venue, schedules []domain.ScheduleEntry) (float64, error) {
	if venue.IsFree() {
		return 0, nil
	}
	return TotalAmount(venue.Rate, schedules)
}

// PaymentBounds down payment minimum to full amount
func PaymentBounds(total float64) Bounds {
	return Bounds{
		Min: Round2(total * domain.DownPaymentRatio),
		Max: total,
	}
}

// Clamp moves an out-of-range amount to the nearest bound and updates IsDownPayment.
// An amount of zero means "not chosen yet" and is left untouched.
func Clamp(payment domain.PaymentDraft, bounds Bounds) (domain.PaymentDraft, bool) {
	if payment.Amount == 0 {
		return payment, false
	}
	switch {
	case payment.Amount > bounds.Max:
		payment.Amount = bounds.Max
		payment.IsDownPayment = false
		return payment, true
	case payment.Amount < bounds.Min:
		payment.Amount = bounds.Min
		payment.IsDownPayment = true
		return payment, true
	}
	return payment, false
}

// IsDownPayment an amount below the full total is a down payment
func IsDownPayment(amount float64, bounds Bounds) bool {
	return amount < bounds.Max
}

// Recompute derives total, bounds and the clamped payment for a draft
func Recompute(venue *domain.Venue, draft domain.BookingDraft) (Quote, error) {
	hours, err := BillableHours(draft.Schedules)
	if err != nil {
		return Quote{}, err
	}
	quote := Quote{BillableHours: hours}

	total, err := VenueTotal(venue, draft.Schedules)
	if err != nil {
		return Quote{}, err
	}
	quote.TotalAmount = total
	quote.Bounds = PaymentBounds(total)

	if draft.Payment != nil {
		payment, clamped := Clamp(*draft.Payment, quote.Bounds)
		quote.Payment = &payment
		quote.Clamped = clamped
	}

	return quote, nil
}
