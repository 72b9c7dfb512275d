package list_venues

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
	"github.com/jhcsc-org/jhcsc-venue/internal/service/venues"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request) (*venues.ListRequest, error) {
	q := r.URL.Query()

	req := &venues.ListRequest{
		Search: q.Get("search"),
		Price:  q.Get("price"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}

	// Парсим venueTypeId если указан
	if raw := q.Get("venueTypeId"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || typeID <= 0 {
			return nil, fmt.Errorf("invalid venueTypeId value: %q", raw)
		}
		req.VenueTypeID = &typeID
	}

	var ok bool
	if req.Page, ok = handlers.QueryUint64(r, "page"); !ok {
		return nil, fmt.Errorf("invalid page value: %q", q.Get("page"))
	}
	if req.PageSize, ok = handlers.QueryUint64(r, "pageSize"); !ok {
		return nil, fmt.Errorf("invalid pageSize value: %q", q.Get("pageSize"))
	}

	return req, nil
}
