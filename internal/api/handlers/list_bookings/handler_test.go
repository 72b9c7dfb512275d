package list_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/middleware"
	"github.com/jhcsc-org/jhcsc-venue/internal/service/bookings"
	"github.com/jhcsc-org/jhcsc-venue/internal/service/bookings/models"
)

type fakeService struct {
	got *models.ListRequest
	err error
}

func (f *fakeService) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}, Total: 0, Page: 1, PageSize: 10}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func request(target, userID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	return r
}

func TestHandle_PassesQuery(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(w, request("/api/v1/bookings?view=approved&search=gym&sort=total_amount&order=asc&page=2&pageSize=20", "u1"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &models.ListRequest{
		UserID:   "u1",
		View:     "approved",
		Search:   "gym",
		Sort:     "total_amount",
		Order:    "asc",
		Page:     2,
		PageSize: 20,
	}, svc.got)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		user   string
		err    error
		want   int
	}{
		{name: "unauthorized", target: "/api/v1/bookings", want: http.StatusUnauthorized},
		{name: "bad page", target: "/api/v1/bookings?page=-1", user: "u1", want: http.StatusBadRequest},
		{name: "invalid view", target: "/api/v1/bookings?view=all", user: "u1", err: fmt.Errorf("%w: %v", bookings.ErrInvalidInput, models.ErrInvalidView), want: http.StatusBadRequest},
		{name: "internal", target: "/api/v1/bookings", user: "u1", err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle(w, request(tt.target, tt.user))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
