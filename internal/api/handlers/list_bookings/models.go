package list_bookings

import (
	"errors"
	"net/http"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
	"github.com/jhcsc-org/jhcsc-venue/internal/service/bookings/models"
)

var errInvalidPagination = errors.New("page and pageSize must be non-negative integers")

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request, userID string) (*models.ListRequest, error) {
	q := r.URL.Query()

	page, ok := handlers.QueryUint64(r, "page")
	if !ok {
		return nil, errInvalidPagination
	}
	pageSize, ok := handlers.QueryUint64(r, "pageSize")
	if !ok {
		return nil, errInvalidPagination
	}

	return &models.ListRequest{
		UserID:   userID,
		View:     q.Get("view"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
		Page:     page,
		PageSize: pageSize,
	}, nil
}
