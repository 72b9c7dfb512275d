package domain

import "time"

// Venue bookable physical space with an hourly rate, or free
type Venue struct {
	ID            int64
	Name          string
	Location      string
	IsPaid        bool
	Rate          *float64
	VenueTypeID   int64
	VenueTypeName string
	ManagerID     string
	LGUID         *int64
	VenuePhoto    *string
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsFree returns true when no payment can be collected for the venue
func (v *Venue) IsFree() bool {
	return !v.IsPaid || v.Rate == nil || *v.Rate <= 0
}

// IsManagedBy returns true if the user manages the venue
func (v *Venue) IsManagedBy(userID string) bool {
	return v.ManagerID != "" && v.ManagerID == userID
}

// VenueType category of venue (gym, hall, field...)
type VenueType struct {
	ID   int64
	Name string
}

// PriceFilter venue price filter
type PriceFilter string

const (
	PriceAll  PriceFilter = "all"
	PriceFree PriceFilter = "free"
	PricePaid PriceFilter = "paid"
)

// VenueFilter filter for the venue catalogue
type VenueFilter struct {
	Search      string // name OR location contains
	Price       PriceFilter
	VenueTypeID *int64
	SortField   string
	SortDesc    bool
	Limit       uint64
	Offset      uint64
}
