package updates

import (
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

const (
	bookingsTable = "bookings"
	maxEntries    = 200
)

// ListRequest параметры ленты изменений
type ListRequest struct {
	UserID       string
	RecordSearch string
	Since        *time.Time // по умолчанию последние 24 часа
}

// EntryResponse запись ленты
type EntryResponse struct {
	ID          int64     `json:"id"`
	RecordID    int64     `json:"recordId"`
	Operation   string    `json:"operation"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	IsConfirmed bool      `json:"isConfirmed"`
	IsDeleted   bool      `json:"isDeleted"`
	TotalAmount float64   `json:"totalAmount"`
	ChangedBy   *string   `json:"changedBy,omitempty"`
	ChangedAt   time.Time `json:"changedAt"`
}

// ListResponse лента изменений
type ListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Since   time.Time       `json:"since"`
}

// FromDomainEntry конвертирует запись аудита в DTO
func FromDomainEntry(e *domain.AuditEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		RecordID:    e.RecordID,
		Operation:   string(e.Operation),
		Title:       e.Title(),
		Summary:     e.Summary(),
		IsConfirmed: e.ChangedData.IsConfirmed,
		IsDeleted:   e.ChangedData.IsDeleted,
		TotalAmount: e.ChangedData.TotalAmount,
		ChangedBy:   e.ChangedBy,
		ChangedAt:   e.ChangedAt,
	}
}
