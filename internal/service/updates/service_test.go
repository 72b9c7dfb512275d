package updates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

type fakeAudit struct {
	filter  domain.AuditFilter
	entries []*domain.AuditEntry
	err     error
}

func (f *fakeAudit) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	f.filter = filter
	return f.entries, f.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestList_DefaultWindow(t *testing.T) {
	repo := &fakeAudit{entries: []*domain.AuditEntry{
		{ID: 2, RecordID: 15, Operation: domain.OperationUpdate, ChangedData: domain.BookingChange{IsConfirmed: true}},
		{ID: 1, RecordID: 15, Operation: domain.OperationInsert},
	}}
	svc := NewService(repo, fixedTime{now}, nopLogger{})

	resp, err := svc.List(context.Background(), &ListRequest{UserID: "u1", RecordSearch: " 15 "})
	require.NoError(t, err)

	assert.Equal(t, "bookings", repo.filter.TableName)
	assert.Equal(t, "15", repo.filter.RecordSearch)
	assert.Equal(t, "u1", repo.filter.UserID)
	assert.Equal(t, now.Add(-24*time.Hour), repo.filter.Since)
	assert.Equal(t, now.Add(-24*time.Hour), resp.Since)

	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "Booking Confirmed", resp.Entries[0].Title)
	assert.Equal(t, "Booking #15 has been confirmed", resp.Entries[0].Summary)
	assert.Equal(t, "New Booking", resp.Entries[1].Title)
}

func TestList_ExplicitSince(t *testing.T) {
	repo := &fakeAudit{}
	svc := NewService(repo, fixedTime{now}, nopLogger{})
	since := now.Add(-72 * time.Hour)

	resp, err := svc.List(context.Background(), &ListRequest{UserID: "u1", Since: &since})
	require.NoError(t, err)
	assert.Equal(t, since, repo.filter.Since)
	assert.Empty(t, resp.Entries)
}

func TestList_InvalidInput(t *testing.T) {
	future := now.Add(time.Hour)
	svc := NewService(&fakeAudit{}, fixedTime{now}, nopLogger{})

	for name, req := range map[string]*ListRequest{
		"no user":      {},
		"non numeric":  {UserID: "u1", RecordSearch: "abc"},
		"future since": {UserID: "u1", Since: &future},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.List(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestList_RepositoryError(t *testing.T) {
	svc := NewService(&fakeAudit{err: errors.New("db down")}, fixedTime{now}, nopLogger{})
	_, err := svc.List(context.Background(), &ListRequest{UserID: "u1"})
	assert.ErrorIs(t, err, ErrInternal)
}
