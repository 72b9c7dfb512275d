package venues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	venueRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/venue"
	"github.com/jhcsc-org/jhcsc-venue/pkg/ptr"
)

type fakeVenues struct {
	filter domain.VenueFilter
}

func (f *fakeVenues) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	return nil, venueRepo.ErrVenueNotFound
}

func (f *fakeVenues) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, int64, error) {
	f.filter = filter
	return []*domain.Venue{
		{ID: 1, Name: "Gym", IsPaid: true, Rate: ptr.Ptr(300.0)},
		{ID: 2, Name: "Court", IsPaid: true},
	}, 11, nil
}

func (f *fakeVenues) ListTypes(ctx context.Context) ([]*domain.VenueType, error) {
	return nil, nil
}

type fakeModes struct{}

func (fakeModes) ListModes(ctx context.Context) ([]*domain.PaymentMode, error) {
	return []*domain.PaymentMode{{ID: 1, Mode: "GCash"}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestList(t *testing.T) {
	repo := &fakeVenues{}
	svc := NewService(repo, fakeModes{}, nopLogger{})

	resp, err := svc.List(context.Background(), &ListRequest{Search: " gym ", Price: "PAID", Page: 2})
	require.NoError(t, err)

	assert.Equal(t, "gym", repo.filter.Search)
	assert.Equal(t, domain.PricePaid, repo.filter.Price)
	assert.Equal(t, uint64(9), repo.filter.Limit)
	assert.Equal(t, uint64(9), repo.filter.Offset)

	assert.Equal(t, uint64(2), resp.Page)
	assert.Equal(t, int64(11), resp.Total)
	require.Len(t, resp.Venues, 2)
	assert.False(t, resp.Venues[0].IsFree)
	assert.True(t, resp.Venues[1].IsFree, "paid venue without a rate is free")
}

func TestList_InvalidInput(t *testing.T) {
	svc := NewService(&fakeVenues{}, fakeModes{}, nopLogger{})

	for _, req := range []*ListRequest{
		{Price: "cheap"},
		{Sort: "manager_id"},
		{PageSize: 500},
	} {
		_, err := svc.List(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeVenues{}, fakeModes{}, nopLogger{})
	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
