package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/ptr"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

func entry(start, end string) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		Date:      time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func isCents(v float64) bool {
	return math.Abs(v*100-math.Round(v*100)) < 1e-6
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 0.33, Round2(20.0/60))
	assert.Equal(t, 0.67, Round2(40.0/60))
	assert.Equal(t, 2.5, Round2(2.5))
	assert.Equal(t, 0.0, Round2(0))
}

func TestHoursBetween(t *testing.T) {
	hours, err := HoursBetween("09:00", "17:00")
	require.NoError(t, err)
	assert.Equal(t, 8.0, hours)

	hours, err = HoursBetween("09:00", "09:20")
	require.NoError(t, err)
	assert.Equal(t, 0.33, hours)

	_, err = HoursBetween("9am", "17:00")
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestFullDayTotalAndBounds(t *testing.T) {
	schedules := []domain.ScheduleEntry{entry("09:00", "17:00")}

	total, err := TotalAmount(ptr.Ptr(500.0), schedules)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, total)

	bounds := PaymentBounds(total)
	assert.Equal(t, Bounds{Min: 2000, Max: 4000}, bounds)
}

func TestShortScheduleIsBilledAsOneHour(t *testing.T) {
	schedules := []domain.ScheduleEntry{
		entry("09:00", "10:30"),
		entry("13:00", "13:30"),
	}

	hours, err := BillableHours(schedules)
	require.NoError(t, err)
	assert.Equal(t, 2.5, hours)

	total, err := TotalAmount(ptr.Ptr(200.0), schedules)
	require.NoError(t, err)
	assert.Equal(t, 500.0, total)
}

func TestFreeVenueCostsNothing(t *testing.T) {
	schedules := []domain.ScheduleEntry{entry("09:00", "17:00")}

	tests := []struct {
		name  string
		venue domain.Venue
	}{
		{name: "not payable", venue: domain.Venue{IsPaid: false, Rate: ptr.Ptr(500.0)}},
		{name: "no rate", venue: domain.Venue{IsPaid: true}},
		{name: "zero rate", venue: domain.Venue{IsPaid: true, Rate: ptr.Ptr(0.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := VenueTotal(&tt.venue, schedules)
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestBoundsAreStableCents(t *testing.T) {
	rates := []float64{0.01, 1, 33.33, 99.99, 150, 199.95, 333.37, 1234.56}
	ranges := [][2]string{
		{"08:00", "09:00"},
		{"08:00", "09:20"},
		{"08:15", "10:05"},
		{"07:45", "19:10"},
		{"00:00", "23:59"},
	}

	for _, rate := range rates {
		for i := range ranges {
			schedules := make([]domain.ScheduleEntry, 0, i+1)
			for _, r := range ranges[:i+1] {
				schedules = append(schedules, entry(r[0], r[1]))
			}

			total, err := TotalAmount(ptr.Ptr(rate), schedules)
			require.NoError(t, err)

			bounds := PaymentBounds(total)
			assert.LessOrEqual(t, bounds.Min, bounds.Max, "rate=%v schedules=%d", rate, len(schedules))
			assert.True(t, isCents(bounds.Min), "min %v is not whole cents", bounds.Min)
			assert.True(t, isCents(bounds.Max), "max %v is not whole cents", bounds.Max)

			hours, err := BillableHours(schedules)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, hours, float64(len(schedules)))
		}
	}
}

func TestClamp(t *testing.T) {
	bounds := Bounds{Min: 2000, Max: 4000}

	t.Run("above max", func(t *testing.T) {
		got, clamped := Clamp(domain.PaymentDraft{Amount: 5000, IsDownPayment: true}, bounds)
		assert.True(t, clamped)
		assert.Equal(t, 4000.0, got.Amount)
		assert.False(t, got.IsDownPayment)
	})

	t.Run("below min", func(t *testing.T) {
		got, clamped := Clamp(domain.PaymentDraft{Amount: 100}, bounds)
		assert.True(t, clamped)
		assert.Equal(t, 2000.0, got.Amount)
		assert.True(t, got.IsDownPayment)
	})

	t.Run("in range is a no-op", func(t *testing.T) {
		in := domain.PaymentDraft{Amount: 2500, PaymentModeID: 2, IsDownPayment: true}
		got, clamped := Clamp(in, bounds)
		assert.False(t, clamped)
		assert.Equal(t, in, got)

		again, clamped := Clamp(got, bounds)
		assert.False(t, clamped)
		assert.Equal(t, got, again)
	})

	t.Run("unset amount is untouched", func(t *testing.T) {
		got, clamped := Clamp(domain.PaymentDraft{}, bounds)
		assert.False(t, clamped)
		assert.Zero(t, got.Amount)
	})
}

func TestRecompute(t *testing.T) {
	venue := &domain.Venue{IsPaid: true, Rate: ptr.Ptr(500.0)}
	draft := domain.BookingDraft{
		Schedules: []domain.ScheduleEntry{entry("09:00", "17:00")},
		Payment:   &domain.PaymentDraft{Amount: 10000, PaymentModeID: 1},
	}

	quote, err := Recompute(venue, draft)
	require.NoError(t, err)

	assert.Equal(t, 8.0, quote.BillableHours)
	assert.Equal(t, 4000.0, quote.TotalAmount)
	assert.Equal(t, Bounds{Min: 2000, Max: 4000}, quote.Bounds)
	require.NotNil(t, quote.Payment)
	assert.True(t, quote.Clamped)
	assert.Equal(t, 4000.0, quote.Payment.Amount)
	assert.False(t, quote.Payment.IsDownPayment)

	// черновик не меняется
	assert.Equal(t, 10000.0, draft.Payment.Amount)
}
