package auditlog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/dbmetrics"
	"github.com/jhcsc-org/jhcsc-venue/pkg/psqlbuilder"
)

// Repository лента изменений бронирований (vw_updates поверх audit_logs)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List записи аудита, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		var e domain.AuditEntry
		var changedData []byte
		var changedBy sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.TableName,
			&e.Operation,
			&e.RecordID,
			&changedData,
			&changedBy,
			&e.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		if len(changedData) > 0 {
			if err := json.Unmarshal(changedData, &e.ChangedData); err != nil {
				return nil, fmt.Errorf("%w: List - decode changed_data of entry %d: %v", ErrScanRow, e.ID, err)
			}
		}
		if changedBy.Valid {
			e.ChangedBy = &changedBy.String
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

func listQuery(filter domain.AuditFilter) squirrel.SelectBuilder {
	q := psqlbuilder.Select(
		"id",
		"table_name",
		"operation",
		"record_id",
		"changed_data",
		"changed_by",
		"changed_at",
	).
		From("vw_updates").
		OrderBy("changed_at DESC", "id DESC")

	if filter.TableName != "" {
		q = q.Where(squirrel.Eq{"table_name": filter.TableName})
	}
	if !filter.Since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"changed_at": filter.Since})
	}
	if filter.RecordSearch != "" {
		q = q.Where(squirrel.Like{"CAST(record_id AS TEXT)": "%" + filter.RecordSearch + "%"})
	}
	if filter.UserID != "" {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"user_id": filter.UserID},
			squirrel.Eq{"manager_id": filter.UserID},
		})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	return q
}
