package domain

import (
	"time"

	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

// ScheduleEntry one requested date/time range of a booking draft
type ScheduleEntry struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// BookingSchedule persisted schedule row, one per ScheduleEntry
type BookingSchedule struct {
	ID        int64
	BookingID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// BookingDraft in-memory booking request before submission
type BookingDraft struct {
	VenueID   int64
	Schedules []ScheduleEntry
	Payment   *PaymentDraft
}

// Booking represents a venue reservation pending manager confirmation
type Booking struct {
	ID              int64
	UserID          string
	VenueID         int64
	TotalAmount     float64
	PaymentStatusID *int64
	IsConfirmed     bool
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending returns true while the booking awaits a manager decision
func (b *Booking) IsPending() bool {
	return !b.IsConfirmed && !b.IsDeleted
}

// CanBeCancelled returns true if the booking can still be withdrawn
func (b *Booking) CanBeCancelled() bool {
	return b.IsPending()
}

// CanBeApproved returns true if a manager can confirm the booking
func (b *Booking) CanBeApproved() bool {
	return b.IsPending()
}

// BookingViewKind selects one of the read views over bookings
type BookingViewKind string

const (
	ViewPending  BookingViewKind = "pending"
	ViewApproved BookingViewKind = "approved"
	ViewDeclined BookingViewKind = "declined"
	ViewLogs     BookingViewKind = "logs"
)

// IsValid reports whether the view is known
func (k BookingViewKind) IsValid() bool {
	switch k {
	case ViewPending, ViewApproved, ViewDeclined, ViewLogs:
		return true
	}
	return false
}

// BookingView denormalized booking row as exposed by the database views
type BookingView struct {
	ID              int64
	UserID          string
	UserName        *string
	UserPhoneNumber *string
	UserAffiliation *string
	VenueID         int64
	VenueName       *string
	VenueLocation   *string
	VenuePhoto      *string
	ManagerID       *string
	ManagerName     *string
	PaymentStatusID *int64
	PaymentStatus   *string
	TotalAmount     float64
	IsConfirmed     bool
	IsDeleted       bool
	Schedules       []BookingSchedule
	Payments        []PaymentSummary
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAccessibleBy returns true for the booker and the venue manager
func (v *BookingView) IsAccessibleBy(userID string) bool {
	if v.UserID == userID {
		return true
	}
	return v.ManagerID != nil && *v.ManagerID == userID
}

// BookingViewFilter filter for listing one of the booking views
type BookingViewFilter struct {
	View      BookingViewKind
	UserID    string // restrict to rows visible to this user
	Search    string // venue name contains
	SortField string
	SortDesc  bool
	Limit     uint64
	Offset    uint64
}
