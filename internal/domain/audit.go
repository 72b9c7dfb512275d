package domain

import (
	"fmt"
	"time"
)

// AuditOperation DML operation recorded by the audit trigger
type AuditOperation string

const (
	OperationInsert AuditOperation = "INSERT"
	OperationUpdate AuditOperation = "UPDATE"
	OperationDelete AuditOperation = "DELETE"
)

// BookingChange snapshot of a booking row stored in audit_logs.changed_data
type BookingChange struct {
	ID              int64   `json:"id"`
	UserID          string  `json:"user_id"`
	VenueID         int64   `json:"venue_id"`
	PaymentStatusID *int64  `json:"payment_status_id"`
	TotalAmount     float64 `json:"total_amount"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
	IsDeleted       bool    `json:"is_deleted"`
	IsConfirmed     bool    `json:"is_confirmed"`
}

// AuditEntry one audit-trail record of the bookings table
type AuditEntry struct {
	ID          int64
	TableName   string
	Operation   AuditOperation
	RecordID    int64
	ChangedData BookingChange
	ChangedBy   *string
	ChangedAt   time.Time
}

// Title short headline for the updates feed
func (e *AuditEntry) Title() string {
	switch e.Operation {
	case OperationInsert:
		return "New Booking"
	case OperationDelete:
		return "Booking Removed"
	}

	switch {
	case e.ChangedData.IsDeleted:
		return "Booking Cancelled"
	case e.ChangedData.IsConfirmed:
		return "Booking Confirmed"
	default:
		return "Booking Updated"
	}
}

// Summary one-line description for the updates feed
func (e *AuditEntry) Summary() string {
	ref := fmt.Sprintf("Booking #%d", e.RecordID)

	switch e.Operation {
	case OperationInsert:
		return ref + " has been created"
	case OperationDelete:
		return ref + " has been permanently removed"
	}

	switch {
	case e.ChangedData.IsDeleted && e.ChangedData.IsConfirmed:
		return ref + " has been cancelled after confirmation"
	case e.ChangedData.IsDeleted:
		return ref + " has been cancelled"
	case e.ChangedData.IsConfirmed:
		return ref + " has been confirmed"
	default:
		return ref + " details have been updated"
	}
}

// AuditFilter filter for the updates feed
type AuditFilter struct {
	TableName    string
	RecordSearch string // record id contains
	Since        time.Time
	UserID       string // only changes of bookings visible to this user
	Limit        uint64
}
