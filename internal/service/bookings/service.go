package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/internal/events"
	bookingRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/booking"
	viewRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/bookingview"
	venueRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/venue"
	"github.com/jhcsc-org/jhcsc-venue/internal/service/bookings/models"
)

// PaymentStatuses статусы платежей при подтверждении бронирования
type PaymentStatuses struct {
	AwaitingVerification int64
	Verified             int64
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	viewRepo    ViewRepository
	venueRepo   VenueRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	publisher   EventPublisher
	statuses    PaymentStatuses
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	viewRepo ViewRepository,
	venueRepo VenueRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	statuses PaymentStatuses,
	logger Logger,
) *Service {
	if statuses.AwaitingVerification == 0 {
		statuses.AwaitingVerification = domain.DefaultAwaitingVerificationStatusID
	}
	if statuses.Verified == 0 {
		statuses.Verified = domain.DefaultVerifiedStatusID
	}

	return &Service{
		bookingRepo: bookingRepo,
		viewRepo:    viewRepo,
		venueRepo:   venueRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		publisher:   publisher,
		statuses:    statuses,
		logger:      logger,
	}
}

// List получает страницу одного из списков: pending, approved, declined, logs.
// Пользователь видит свои бронирования, а в pending и logs также бронирования своих площадок.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: view=%s, user=%s, search=%q, sort=%s %s, page=%d, pageSize=%d",
		req.View, req.UserID, req.Search, req.Sort, req.Order, req.Page, req.PageSize)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid request for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, total, err := s.viewRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings for user=%s", len(items), total, req.UserID)
	return models.FromDomainBookingViewList(items, total, filter), nil
}

// GetByID получает бронирование по ID.
// Доступно автору бронирования и менеджеру площадки.
func (s *Service) GetByID(ctx context.Context, id int64, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, userID)

	view, err := s.viewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, viewRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !view.IsAccessibleBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBookingView(view), nil
}

// Cancel отменяет (мягко удаляет) ожидающее бронирование.
// Отменить может автор бронирования или менеджер площадки.
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID string) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%s", bookingID, userID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		if err := s.checkManagerAccess(ctx, booking.VenueID, userID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%d", userID, bookingID)
			return err
		}
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, confirmed=%t, deleted=%t",
			bookingID, booking.IsConfirmed, booking.IsDeleted)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.SoftDelete(ctx, bookingID); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrNotPending):
			// изменилось между чтением и обновлением
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, s.publisher.BookingCancelled, bookingID, userID, string(domain.ViewDeclined))

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Approve подтверждает бронирование и платежи, ожидающие проверки.
// Доступно только менеджеру площадки.
func (s *Service) Approve(ctx context.Context, bookingID int64, userID string) error {
	s.logger.Info("Approve: approving booking id=%d by user=%s", bookingID, userID)

	booking, err := s.getBooking(ctx, "Approve", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, booking.VenueID, userID); err != nil {
		s.logger.Warn("Approve: access denied for user=%s to approve booking id=%d", userID, bookingID)
		return err
	}

	if !booking.CanBeApproved() {
		s.logger.Warn("Approve: booking id=%d cannot be approved, confirmed=%t, deleted=%t",
			bookingID, booking.IsConfirmed, booking.IsDeleted)
		return ErrCannotApprove
	}

	var confirmedPayments int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Confirm(txCtx, bookingID); err != nil {
			return err
		}

		n, err := s.paymentRepo.ConfirmByBooking(txCtx, bookingID, s.statuses.AwaitingVerification, s.statuses.Verified)
		if err != nil {
			return err
		}
		confirmedPayments = n
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrNotPending):
			return ErrCannotApprove
		}
		s.logger.Error("Approve: transaction failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Approve - transaction failed: %v", ErrInternal, err)
	}

	s.publish(ctx, s.publisher.BookingApproved, bookingID, userID, string(domain.ViewApproved))

	s.logger.Info("Approve: successfully approved booking id=%d, payments confirmed=%d", bookingID, confirmedPayments)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID int64, userID string) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrAccessDenied
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManagedBy(userID) {
		s.logger.Warn("checkManagerAccess: user=%s is not a manager of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) publish(
	ctx context.Context,
	fn func(context.Context, events.BookingStatusChanged) error,
	bookingID int64,
	actorID string,
	status string,
) {
	evt := events.BookingStatusChanged{
		BookingID:  bookingID,
		ActorID:    actorID,
		Status:     status,
		OccurredAt: time.Now(),
	}
	if err := fn(ctx, evt); err != nil {
		s.logger.Warn("failed to publish %s event for booking id=%d: %v", status, bookingID, err)
	}
}
