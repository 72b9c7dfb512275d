package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/dbmetrics"
	"github.com/jhcsc-org/jhcsc-venue/pkg/psqlbuilder"
)

// Repository репозиторий расписаний бронирований (booking_schedule)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateMany вставляет все расписания одним запросом
func (r *Repository) CreateMany(ctx context.Context, bookingID int64, entries []domain.ScheduleEntry) ([]*domain.BookingSchedule, error) {
	if len(entries) == 0 {
		return nil, ErrEmptySchedules
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertQuery(bookingID, entries).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMany - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMany - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(entries))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: CreateMany - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateMany - rows error: %v", ErrScanRow, err)
	}

	return insertedSchedules(bookingID, entries, ids)
}

func insertQuery(bookingID int64, entries []domain.ScheduleEntry) squirrel.InsertBuilder {
	insert := psqlbuilder.Insert("booking_schedule").
		Columns("booking_id", "date", "start_time", "end_time")
	for _, e := range entries {
		insert = insert.Values(bookingID, e.Date.Format(domain.DateFormat), e.StartTime, e.EndTime)
	}
	return insert.Suffix("RETURNING id")
}

// insertedSchedules сопоставляет id из RETURNING с entries: порядок совпадает с VALUES
func insertedSchedules(bookingID int64, entries []domain.ScheduleEntry, ids []int64) ([]*domain.BookingSchedule, error) {
	if len(ids) != len(entries) {
		return nil, fmt.Errorf("%w: CreateMany - %d rows returned for %d inserted", ErrScanRow, len(ids), len(entries))
	}

	schedules := make([]*domain.BookingSchedule, 0, len(entries))
	for i, e := range entries {
		schedules = append(schedules, &domain.BookingSchedule{
			ID:        ids[i],
			BookingID: bookingID,
			Date:      e.Date,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return schedules, nil
}
