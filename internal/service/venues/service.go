package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	venueRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/venue"
)

// Service каталог площадок и справочники
type Service struct {
	venueRepo   VenueRepository
	paymentRepo PaymentModeRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(venueRepo VenueRepository, paymentRepo PaymentModeRepository, logger Logger) *Service {
	return &Service{
		venueRepo:   venueRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// List страница каталога
func (s *Service) List(ctx context.Context, req *ListRequest) (*VenueListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid request: %v", err)
		return nil, err
	}

	venues, total, err := s.venueRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &VenueListResponse{
		Venues:   make([]VenueResponse, 0, len(venues)),
		Total:    total,
		Page:     filter.Offset/filter.Limit + 1,
		PageSize: filter.Limit,
	}
	for _, v := range venues {
		resp.Venues = append(resp.Venues, FromDomainVenue(v))
	}

	return resp, nil
}

// GetByID площадка по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: repository error for venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return venue, nil
}

// ListPaymentModes способы оплаты
func (s *Service) ListPaymentModes(ctx context.Context) ([]*domain.PaymentMode, error) {
	modes, err := s.paymentRepo.ListModes(ctx)
	if err != nil {
		s.logger.Error("ListPaymentModes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPaymentModes - repository error: %v", ErrInternal, err)
	}
	return modes, nil
}

// ListVenueTypes типы площадок
func (s *Service) ListVenueTypes(ctx context.Context) ([]*domain.VenueType, error) {
	types, err := s.venueRepo.ListTypes(ctx)
	if err != nil {
		s.logger.Error("ListVenueTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListVenueTypes - repository error: %v", ErrInternal, err)
	}
	return types, nil
}
