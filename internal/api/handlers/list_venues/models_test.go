package list_venues

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/venues?search=court&price=free&venueTypeId=2&sort=rate&order=desc&page=3&pageSize=9", nil)

	req, err := ToServiceRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "court", req.Search)
	assert.Equal(t, "free", req.Price)
	require.NotNil(t, req.VenueTypeID)
	assert.Equal(t, int64(2), *req.VenueTypeID)
	assert.Equal(t, "rate", req.Sort)
	assert.Equal(t, "desc", req.Order)
	assert.Equal(t, uint64(3), req.Page)
	assert.Equal(t, uint64(9), req.PageSize)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, target := range []string{
		"/api/v1/venues?venueTypeId=abc",
		"/api/v1/venues?venueTypeId=0",
		"/api/v1/venues?page=x",
		"/api/v1/venues?pageSize=-5",
	} {
		_, err := ToServiceRequest(httptest.NewRequest(http.MethodGet, target, nil))
		assert.Error(t, err, target)
	}
}
