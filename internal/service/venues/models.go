package venues

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

// ListRequest запрос каталога площадок
type ListRequest struct {
	Search      string
	Price       string // all | free | paid
	VenueTypeID *int64
	Sort        string // name | rate | created_at
	Order       string // asc | desc
	Page        uint64
	PageSize    uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.VenueFilter, error) {
	price := domain.PriceFilter(strings.ToLower(r.Price))
	switch price {
	case "":
		price = domain.PriceAll
	case domain.PriceAll, domain.PriceFree, domain.PricePaid:
	default:
		return domain.VenueFilter{}, fmt.Errorf("%w: unknown price filter %q", ErrInvalidInput, r.Price)
	}

	sort := r.Sort
	switch sort {
	case "":
		sort = "name"
	case "name", "rate", "created_at":
	default:
		return domain.VenueFilter{}, fmt.Errorf("%w: unknown sort field %q", ErrInvalidInput, r.Sort)
	}

	pageSize := r.PageSize
	if pageSize == 0 {
		pageSize = domain.DefaultVenuesPageSize
	}
	if pageSize > domain.MaxPageSize {
		return domain.VenueFilter{}, fmt.Errorf("%w: page size must not exceed %d", ErrInvalidInput, domain.MaxPageSize)
	}

	page := r.Page
	if page == 0 {
		page = 1
	}

	return domain.VenueFilter{
		Search:      strings.TrimSpace(r.Search),
		Price:       price,
		VenueTypeID: r.VenueTypeID,
		SortField:   sort,
		SortDesc:    strings.EqualFold(r.Order, "desc"),
		Limit:       pageSize,
		Offset:      (page - 1) * pageSize,
	}, nil
}

// VenueResponse площадка каталога
type VenueResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	IsPaid        bool      `json:"isPaid"`
	IsFree        bool      `json:"isFree"`
	Rate          *float64  `json:"rate,omitempty"`
	VenueTypeID   int64     `json:"venueTypeId"`
	VenueTypeName string    `json:"venueTypeName"`
	ManagerID     string    `json:"managerId"`
	VenuePhoto    *string   `json:"venuePhoto,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// VenueListResponse страница каталога
type VenueListResponse struct {
	Venues   []VenueResponse `json:"venues"`
	Total    int64           `json:"total"`
	Page     uint64          `json:"page"`
	PageSize uint64          `json:"pageSize"`
}

// FromDomainVenue конвертирует domain модель в DTO
func FromDomainVenue(v *domain.Venue) VenueResponse {
	return VenueResponse{
		ID:            v.ID,
		Name:          v.Name,
		Location:      v.Location,
		IsPaid:        v.IsPaid,
		IsFree:        v.IsFree(),
		Rate:          v.Rate,
		VenueTypeID:   v.VenueTypeID,
		VenueTypeName: v.VenueTypeName,
		ManagerID:     v.ManagerID,
		VenuePhoto:    v.VenuePhoto,
		CreatedAt:     v.CreatedAt,
	}
}
