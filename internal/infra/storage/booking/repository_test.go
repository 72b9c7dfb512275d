package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execResult struct {
	rows int64
	err  error
}

func (r execResult) LastInsertId() (int64, error) { return 0, nil }
func (r execResult) RowsAffected() (int64, error) { return r.rows, r.err }

type fakeExecutor struct {
	result  sql.Result
	err     error
	queries []string
	args    [][]interface{}
}

func (f *fakeExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	return f.result, f.err
}

func (f *fakeExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (f *fakeExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	panic("unexpected query row: " + query)
}

func TestDelete(t *testing.T) {
	t.Run("hard deletes the row by id", func(t *testing.T) {
		db := &fakeExecutor{result: execResult{rows: 1}}
		repo := NewRepository(db)

		err := repo.Delete(context.Background(), 42)

		require.NoError(t, err)
		require.Len(t, db.queries, 1)
		assert.Equal(t, "DELETE FROM bookings WHERE id = $1", db.queries[0])
		assert.Equal(t, []interface{}{int64(42)}, db.args[0])
	})

	t.Run("no rows affected is not found", func(t *testing.T) {
		repo := NewRepository(&fakeExecutor{result: execResult{rows: 0}})

		err := repo.Delete(context.Background(), 42)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("exec error", func(t *testing.T) {
		repo := NewRepository(&fakeExecutor{err: errors.New("connection reset")})

		err := repo.Delete(context.Background(), 42)

		assert.ErrorIs(t, err, ErrExecQuery)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo := NewRepository(&fakeExecutor{result: execResult{err: errors.New("unsupported")}})

		err := repo.Delete(context.Background(), 42)

		assert.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestSoftDeleteOnlyTouchesPendingBooking(t *testing.T) {
	db := &fakeExecutor{result: execResult{rows: 1}}
	repo := NewRepository(db)

	err := repo.SoftDelete(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE bookings SET is_deleted = $1, updated_at = NOW() WHERE id = $2 AND is_confirmed = $3 AND is_deleted = $4",
		db.queries[0])
	assert.Equal(t, []interface{}{true, int64(42), false, false}, db.args[0])
}

func TestConfirmSetsConfirmedFlag(t *testing.T) {
	db := &fakeExecutor{result: execResult{rows: 1}}
	repo := NewRepository(db)

	err := repo.Confirm(context.Background(), 7)

	require.NoError(t, err)
	assert.Contains(t, db.queries[0], "SET is_confirmed = $1")
	assert.Equal(t, []interface{}{true, int64(7), false, false}, db.args[0])
}
