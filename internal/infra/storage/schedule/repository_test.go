package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

func entry(date string, start, end types.TimeString) domain.ScheduleEntry {
	d, _ := time.Parse(domain.DateFormat, date)
	return domain.ScheduleEntry{Date: d, StartTime: start, EndTime: end}
}

func TestInsertQuery(t *testing.T) {
	entries := []domain.ScheduleEntry{
		entry("2024-03-01", "09:00", "12:00"),
		entry("2024-03-02", "13:00", "17:00"),
	}

	query, args, err := insertQuery(42, entries).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO booking_schedule (booking_id,date,start_time,end_time) "+
			"VALUES ($1,$2,$3,$4),($5,$6,$7,$8) RETURNING id",
		query)
	assert.Equal(t, []interface{}{
		int64(42), "2024-03-01", types.TimeString("09:00"), types.TimeString("12:00"),
		int64(42), "2024-03-02", types.TimeString("13:00"), types.TimeString("17:00"),
	}, args)
}

func TestInsertedSchedules(t *testing.T) {
	entries := []domain.ScheduleEntry{
		entry("2024-03-01", "09:00", "12:00"),
		entry("2024-03-02", "13:00", "17:00"),
	}

	t.Run("ids follow values order", func(t *testing.T) {
		schedules, err := insertedSchedules(42, entries, []int64{100, 101})
		require.NoError(t, err)
		require.Len(t, schedules, 2)

		assert.Equal(t, int64(100), schedules[0].ID)
		assert.Equal(t, types.TimeString("09:00"), schedules[0].StartTime)
		assert.Equal(t, int64(101), schedules[1].ID)
		assert.Equal(t, types.TimeString("13:00"), schedules[1].StartTime)
		for _, s := range schedules {
			assert.Equal(t, int64(42), s.BookingID)
		}
	})

	t.Run("row count mismatch", func(t *testing.T) {
		_, err := insertedSchedules(42, entries, []int64{100})
		assert.ErrorIs(t, err, ErrScanRow)

		_, err = insertedSchedules(42, entries, []int64{100, 101, 102})
		assert.ErrorIs(t, err, ErrScanRow)
	})
}

func TestCreateManyRejectsEmptySlice(t *testing.T) {
	// до обращения к БД
	repo := NewRepository(nil)

	schedules, err := repo.CreateMany(context.Background(), 42, nil)

	assert.ErrorIs(t, err, ErrEmptySchedules)
	assert.Nil(t, schedules)
}
