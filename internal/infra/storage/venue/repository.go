package venue

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

var venueColumns = []string{
	"v.id",
	"v.name",
	"v.location",
	"v.is_paid",
	"v.rate",
	"v.venue_type_id",
	"COALESCE(vt.name, '')",
	"v.manager_id",
	"v.lgu_id",
	"v.venue_photo",
	"v.is_deleted",
	"v.created_at",
	"v.updated_at",
}

// sortColumns допустимые поля сортировки каталога
var sortColumns = map[string]string{
	"name":       "v.name",
	"rate":       "v.rate",
	"created_at": "v.created_at",
}

// Repository репозиторий площадок
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает неудаленную площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := baseSelect(venueColumns...).
		Where(squirrel.Eq{"v.id": id, "v.is_deleted": false}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	venue, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %v", ErrScanRow, err)
	}

	return venue, nil
}

// List каталог площадок с фильтрами и общим количеством
func (r *Repository) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := applyFilter(baseSelect("COUNT(*)"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count venues: %v", ErrExecQuery, err)
	}

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		venues = append(venues, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return venues, total, nil
}

// ListTypes справочник типов площадок
func (r *Repository) ListTypes(ctx context.Context) ([]*domain.VenueType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("venue_types").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTypes - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.VenueType, 0)
	for rows.Next() {
		var t domain.VenueType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("%w: ListTypes - scan row: %v", ErrScanRow, err)
		}
		types = append(types, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTypes - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}

func baseSelect(columns ...string) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("venues v").
		LeftJoin("venue_types vt ON vt.id = v.venue_type_id")
}

func listQuery(filter domain.VenueFilter) squirrel.SelectBuilder {
	q := applyFilter(baseSelect(venueColumns...), filter)

	column, ok := sortColumns[filter.SortField]
	if !ok {
		column = sortColumns["name"]
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	q = q.OrderBy(column+" "+direction, "v.id ASC")

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	return q
}

func applyFilter(q squirrel.SelectBuilder, filter domain.VenueFilter) squirrel.SelectBuilder {
	q = q.Where(squirrel.Eq{"v.is_deleted": false})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"v.name": pattern},
			squirrel.ILike{"v.location": pattern},
		})
	}

	switch filter.Price {
	case domain.PriceFree:
		q = q.Where(squirrel.Eq{"v.is_paid": false})
	case domain.PricePaid:
		q = q.Where(squirrel.Eq{"v.is_paid": true})
	}

	if filter.VenueTypeID != nil {
		q = q.Where(squirrel.Eq{"v.venue_type_id": *filter.VenueTypeID})
	}

	return q
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	var v domain.Venue
	var rate sql.NullFloat64
	var lguID sql.NullInt64
	var photo sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Location,
		&v.IsPaid,
		&rate,
		&v.VenueTypeID,
		&v.VenueTypeName,
		&v.ManagerID,
		&lguID,
		&photo,
		&v.IsDeleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rate.Valid {
		v.Rate = &rate.Float64
	}
	if lguID.Valid {
		v.LGUID = &lguID.Int64
	}
	if photo.Valid {
		v.VenuePhoto = &photo.String
	}
	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time

	return &v, nil
}
