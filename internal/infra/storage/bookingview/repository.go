package bookingview

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/dbmetrics"
	"github.com/jhcsc-org/jhcsc-venue/pkg/psqlbuilder"
)

var viewColumns = []string{
	"id",
	"user_id",
	"user_name",
	"user_phone_number",
	"user_affiliation",
	"venue_id",
	"venue_name",
	"venue_location",
	"venue_photo",
	"manager_id",
	"manager_name",
	"payment_status_id",
	"payment_status",
	"total_amount",
	"is_confirmed",
	"is_deleted",
	"booking_schedules",
	"payments",
	"created_at",
	"updated_at",
}

// SortColumns допустимые поля сортировки
var SortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"total_amount": true,
	"venue_name":   true,
}

// Repository чтение бронирований из представлений vw_booker, vw_user_approved, vw_user_deleted
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List страница выбранного представления и общее количество строк
func (r *Repository) List(ctx context.Context, filter domain.BookingViewFilter) ([]*domain.BookingView, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countBuilder, err := filtered(psqlbuilder.Select("COUNT(*)"), filter)
	if err != nil {
		return nil, 0, err
	}
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count rows: %v", ErrExecQuery, err)
	}

	listBuilder, err := listQuery(filter)
	if err != nil {
		return nil, 0, err
	}
	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.BookingView, 0)
	for rows.Next() {
		item, err := scanView(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return items, total, nil
}

// GetByID бронирование с расписаниями и платежами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(viewColumns...).
		From("vw_booker").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanView(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

// source представление и базовое условие для вида списка
func source(view domain.BookingViewKind) (string, squirrel.Sqlizer, bool, error) {
	switch view {
	case domain.ViewPending:
		return "vw_booker", squirrel.Eq{"is_deleted": false, "is_confirmed": false}, true, nil
	case domain.ViewLogs:
		return "vw_booker", nil, true, nil
	case domain.ViewApproved:
		return "vw_user_approved", nil, false, nil
	case domain.ViewDeclined:
		return "vw_user_deleted", nil, false, nil
	}
	return "", nil, false, fmt.Errorf("%w: %q", ErrUnknownView, view)
}

func filtered(q squirrel.SelectBuilder, filter domain.BookingViewFilter) (squirrel.SelectBuilder, error) {
	table, cond, managerVisible, err := source(filter.View)
	if err != nil {
		return q, err
	}

	q = q.From(table)
	if cond != nil {
		q = q.Where(cond)
	}

	if filter.UserID != "" {
		if managerVisible {
			q = q.Where(squirrel.Or{
				squirrel.Eq{"user_id": filter.UserID},
				squirrel.Eq{"manager_id": filter.UserID},
			})
		} else {
			q = q.Where(squirrel.Eq{"user_id": filter.UserID})
		}
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"venue_name": "%" + filter.Search + "%"})
	}

	return q, nil
}

func listQuery(filter domain.BookingViewFilter) (squirrel.SelectBuilder, error) {
	q, err := filtered(psqlbuilder.Select(viewColumns...), filter)
	if err != nil {
		return q, err
	}

	sortField := filter.SortField
	if !SortColumns[sortField] {
		sortField = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	q = q.OrderBy(sortField+" "+direction, "id DESC")

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	return q, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanView(row rowScanner) (*domain.BookingView, error) {
	var v domain.BookingView
	var (
		userName, userPhone, userAffiliation sql.NullString
		venueName, venueLocation, venuePhoto sql.NullString
		managerID, managerName, paymentState sql.NullString
		paymentStatusID                      sql.NullInt64
		totalAmount                          sql.NullFloat64
		isConfirmed, isDeleted               sql.NullBool
		schedulesRaw, paymentsRaw            []byte
		createdAt, updatedAt                 sql.NullTime
	)

	err := row.Scan(
		&v.ID,
		&v.UserID,
		&userName,
		&userPhone,
		&userAffiliation,
		&v.VenueID,
		&venueName,
		&venueLocation,
		&venuePhoto,
		&managerID,
		&managerName,
		&paymentStatusID,
		&paymentState,
		&totalAmount,
		&isConfirmed,
		&isDeleted,
		&schedulesRaw,
		&paymentsRaw,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanView - scan row: %v", ErrScanRow, err)
	}

	v.UserName = nullString(userName)
	v.UserPhoneNumber = nullString(userPhone)
	v.UserAffiliation = nullString(userAffiliation)
	v.VenueName = nullString(venueName)
	v.VenueLocation = nullString(venueLocation)
	v.VenuePhoto = nullString(venuePhoto)
	v.ManagerID = nullString(managerID)
	v.ManagerName = nullString(managerName)
	v.PaymentStatus = nullString(paymentState)
	if paymentStatusID.Valid {
		v.PaymentStatusID = &paymentStatusID.Int64
	}
	v.TotalAmount = totalAmount.Float64
	v.IsConfirmed = isConfirmed.Bool
	v.IsDeleted = isDeleted.Bool
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	if v.Schedules, err = decodeSchedules(v.ID, schedulesRaw); err != nil {
		return nil, err
	}
	if v.Payments, err = decodePayments(paymentsRaw); err != nil {
		return nil, err
	}

	return &v, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
