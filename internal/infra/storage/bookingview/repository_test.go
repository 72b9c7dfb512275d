package bookingview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

func TestListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.BookingViewFilter
		contains []string
		args     []interface{}
	}{
		{
			name:   "pending for booker or manager",
			filter: domain.BookingViewFilter{View: domain.ViewPending, UserID: "u-1", Limit: 10},
			contains: []string{
				"FROM vw_booker",
				"is_confirmed = $1 AND is_deleted = $2",
				"(user_id = $3 OR manager_id = $4)",
				"ORDER BY created_at ASC, id DESC",
				"LIMIT 10 OFFSET 0",
			},
			args: []interface{}{false, false, "u-1", "u-1"},
		},
		{
			name:     "approved only for booker",
			filter:   domain.BookingViewFilter{View: domain.ViewApproved, UserID: "u-1", SortField: "total_amount", SortDesc: true},
			contains: []string{"FROM vw_user_approved", "WHERE user_id = $1", "ORDER BY total_amount DESC"},
			args:     []interface{}{"u-1"},
		},
		{
			name:     "declined with search",
			filter:   domain.BookingViewFilter{View: domain.ViewDeclined, UserID: "u-1", Search: "hall", SortField: "bogus"},
			contains: []string{"FROM vw_user_deleted", "venue_name ILIKE $2", "ORDER BY created_at ASC"},
			args:     []interface{}{"u-1", "%hall%"},
		},
		{
			name:     "logs",
			filter:   domain.BookingViewFilter{View: domain.ViewLogs, UserID: "u-1"},
			contains: []string{"FROM vw_booker WHERE (user_id = $1 OR manager_id = $2)"},
			args:     []interface{}{"u-1", "u-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := listQuery(tt.filter)
			require.NoError(t, err)

			query, args, err := q.ToSql()
			require.NoError(t, err)

			for _, part := range tt.contains {
				assert.Contains(t, query, part)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestListQuery_UnknownView(t *testing.T) {
	_, err := listQuery(domain.BookingViewFilter{View: "archived"})
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestDecodeSchedules(t *testing.T) {
	raw := []byte(`[{"id":5,"date":"2024-11-04","start_time":"09:00:00","end_time":"17:00:00"}]`)

	schedules, err := decodeSchedules(42, raw)
	require.NoError(t, err)
	require.Len(t, schedules, 1)

	assert.Equal(t, int64(5), schedules[0].ID)
	assert.Equal(t, int64(42), schedules[0].BookingID)
	assert.Equal(t, time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), schedules[0].Date)
	assert.Equal(t, types.TimeString("09:00"), schedules[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), schedules[0].EndTime)

	empty, err := decodeSchedules(42, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = decodeSchedules(42, []byte(`{"broken"`))
	assert.ErrorIs(t, err, ErrDecodeJSON)
}

func TestDecodePayments(t *testing.T) {
	raw := []byte(`[{"payment_id":7,"amount":2000,"payment_mode_id":1,"payment_date":"2024-11-01T10:00:00+00:00","is_down_payment":true,"confirmation_status":false,"transaction_reference":null,"currency_code":"PHP"}]`)

	payments, err := decodePayments(raw)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(7), payments[0].PaymentID)
	assert.Equal(t, 2000.0, payments[0].Amount)
	assert.True(t, payments[0].IsDownPayment)
	assert.Nil(t, payments[0].TransactionReference)

	none, err := decodePayments([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
