package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/pkg/dbmetrics"
	"github.com/jhcsc-org/jhcsc-venue/pkg/psqlbuilder"
)

// Repository репозиторий платежей, ссылок на чеки и справочника способов оплаты
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertQuery(payment).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *payment
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

func insertQuery(payment *domain.Payment) squirrel.InsertBuilder {
	return psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"amount",
			"currency_code",
			"payment_mode_id",
			"payment_status_id",
			"is_down_payment",
			"confirmation_status",
			"is_deleted",
			"transaction_reference",
			"payment_date",
		).
		Values(
			payment.BookingID,
			payment.Amount,
			payment.CurrencyCode,
			payment.PaymentModeID,
			payment.PaymentStatusID,
			payment.IsDownPayment,
			false,
			false,
			payment.TransactionReference,
			payment.PaymentDate,
		).
		Suffix("RETURNING id, created_at, updated_at")
}

// Delete физически удаляет платеж (откат создания бронирования)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// CreateReference сохраняет ссылку на загруженный чек
func (r *Repository) CreateReference(ctx context.Context, ref *domain.PaymentReference) (*domain.PaymentReference, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := referenceQuery(ref).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateReference - build insert query: %v", ErrBuildQuery, err)
	}

	created := *ref
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateReference - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

func referenceQuery(ref *domain.PaymentReference) squirrel.InsertBuilder {
	return psqlbuilder.Insert("payment_reference").
		Columns("payment_id", "receipt_link").
		Values(ref.PaymentID, ref.ReceiptLink).
		Suffix("RETURNING id")
}

// ConfirmByBooking подтверждает платежи бронирования, ожидающие проверки
func (r *Repository) ConfirmByBooking(ctx context.Context, bookingID int64, fromStatusID, toStatusID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("confirmation_status", true).
		Set("payment_status_id", toStatusID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"booking_id":        bookingID,
			"payment_status_id": fromStatusID,
			"is_deleted":        false,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmByBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmByBooking - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ConfirmByBooking - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ListModes справочник способов оплаты
func (r *Repository) ListModes(ctx context.Context) ([]*domain.PaymentMode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "mode").
		From("payment_modes").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListModes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListModes - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	modes := make([]*domain.PaymentMode, 0)
	for rows.Next() {
		var m domain.PaymentMode
		if err := rows.Scan(&m.ID, &m.Mode); err != nil {
			return nil, fmt.Errorf("%w: ListModes - scan row: %v", ErrScanRow, err)
		}
		modes = append(modes, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListModes - rows error: %v", ErrScanRow, err)
	}

	return modes, nil
}
