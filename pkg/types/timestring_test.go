package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr bool
	}{
		{name: "two digit hour", in: "09:00", want: "09:00"},
		{name: "single digit hour is normalized", in: "9:30", want: "09:30"},
		{name: "postgres time with seconds", in: "17:45:00", want: "17:45"},
		{name: "last minute of day", in: "23:59", want: "23:59"},
		{name: "hour out of range", in: "24:00", wantErr: true},
		{name: "minute out of range", in: "10:60", wantErr: true},
		{name: "garbage", in: "noon", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringOrdering(t *testing.T) {
	start := TimeString("09:00")
	end := TimeString("10:30")

	assert.True(t, start.IsBefore(end))
	assert.False(t, end.IsBefore(start))
	assert.False(t, start.IsBefore(start))
	assert.False(t, TimeString("9am").IsBefore(end))

	minutes, err := end.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 13, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("13:15"), ts)

	require.NoError(t, ts.Scan([]byte("08:05:00")))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
