package updates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

// Service лента последних изменений бронирований
type Service struct {
	auditRepo    AuditRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(auditRepo AuditRepository, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}
	return &Service{
		auditRepo:    auditRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List изменения бронирований пользователя, новые первыми
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	search := strings.TrimSpace(req.RecordSearch)
	for _, r := range search {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: record search must contain digits only", ErrInvalidInput)
		}
	}

	now := s.timeProvider.Now()
	since := now.Add(-domain.DefaultUpdatesWindowHrs * time.Hour)
	if req.Since != nil {
		if req.Since.After(now) {
			return nil, fmt.Errorf("%w: since is in the future", ErrInvalidInput)
		}
		since = *req.Since
	}

	entries, err := s.auditRepo.List(ctx, domain.AuditFilter{
		TableName:    bookingsTable,
		RecordSearch: search,
		Since:        since,
		UserID:       req.UserID,
		Limit:        maxEntries,
	})
	if err != nil {
		s.logger.Error("List: repository error for user_id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &ListResponse{
		Entries: make([]EntryResponse, 0, len(entries)),
		Since:   since,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, FromDomainEntry(e))
	}

	return resp, nil
}
