package create_booking

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/internal/events"
	venueRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/venue"
	"github.com/jhcsc-org/jhcsc-venue/internal/pricing"
	"github.com/jhcsc-org/jhcsc-venue/pkg/ptr"
)

// UseCase use case для создания бронирования.
// Запись идет отдельными операциями без общей транзакции, поэтому при ошибке
// уже выполненные шаги откатываются компенсирующими действиями.
type UseCase struct {
	venueRepo    VenueRepository
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	paymentRepo  PaymentRepository
	receipts     ReceiptStorage
	publisher    EventPublisher
	recorder     StepRecorder
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр use case. recorder может быть nil.
func NewUseCase(
	venueRepo VenueRepository,
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	paymentRepo PaymentRepository,
	receipts ReceiptStorage,
	publisher EventPublisher,
	recorder StepRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if opts.AwaitingVerificationStatusID == 0 {
		opts.AwaitingVerificationStatusID = domain.DefaultAwaitingVerificationStatusID
	}
	if opts.CurrencyCode == "" {
		opts.CurrencyCode = domain.DefaultCurrency
	}

	return &UseCase{
		venueRepo:    venueRepo,
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		paymentRepo:  paymentRepo,
		receipts:     receipts,
		publisher:    publisher,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		opts:         opts,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, venue=%d, schedules=%d, receipt=%t",
		req.UserID, req.VenueID, len(req.Schedules), req.Receipt != nil)

	// 1. Валидация формы черновика
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Считаем стоимость и проверяем платеж
	quote, err := pricing.Recompute(venue, domain.BookingDraft{VenueID: venue.ID, Schedules: req.Schedules})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to price booking: %v", err)
		return nil, fmt.Errorf("%w: failed to price booking: %v", ErrInternal, err)
	}

	withPayment, err := validatePayment(req, venue, quote.Bounds, uc.opts)
	if err != nil {
		uc.logger.Warn("CreateBooking: payment validation failed: %v", err)
		return nil, err
	}

	if !venue.IsFree() && !withPayment {
		uc.logger.Info("CreateBooking: paid venue id=%d without receipt, payment is deferred", venue.ID)
	}

	s := newSaga(uc)

	// 4. Создаем бронирование: якорь для всех компенсаций
	var booking *domain.Booking
	err = s.step(stepCreateBooking, func() error {
		var err error
		booking, err = uc.bookingRepo.Create(ctx, &domain.Booking{
			UserID:      req.UserID,
			VenueID:     venue.ID,
			TotalAmount: quote.TotalAmount,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.bookingID = booking.ID
	s.push(actionDeleteBooking, func(ctx context.Context) error {
		return uc.bookingRepo.Delete(ctx, booking.ID)
	})

	resp := &Response{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		VenueID:       booking.VenueID,
		TotalAmount:   booking.TotalAmount,
		BillableHours: quote.BillableHours,
	}

	// 5. Расписания и ветка оплаты выполняются параллельно
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.step(stepCreateSchedules, func() error {
			schedules, err := uc.scheduleRepo.CreateMany(gctx, booking.ID, req.Schedules)
			if err != nil {
				return err
			}
			resp.Schedules = schedules
			return nil
		})
	})

	if withPayment {
		g.Go(func() error {
			payment, url, err := uc.runPayment(gctx, s, booking.ID, req, quote.Bounds)
			if err != nil {
				return err
			}
			resp.PaymentID = ptr.Ptr(payment.ID)
			resp.PaymentAmount = ptr.Ptr(payment.Amount)
			resp.IsDownPayment = ptr.Ptr(payment.IsDownPayment)
			resp.ReceiptURL = ptr.Ptr(url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, s.fail(ctx, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", booking.ID, booking.TotalAmount)

	evt := events.BookingCreated{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		VenueID:     booking.VenueID,
		TotalAmount: booking.TotalAmount,
		PaymentID:   resp.PaymentID,
		OccurredAt:  uc.timeProvider.Now(),
	}
	if err := uc.publisher.BookingCreated(ctx, evt); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish booking.created for id=%d: %v", booking.ID, err)
	}

	return resp, nil
}

// runPayment загрузка чека, платеж и ссылка на чек.
// Ошибка загрузки или создания платежа сразу удаляет файл; бронь откатывается общим стеком.
func (uc *UseCase) runPayment(
	ctx context.Context,
	s *saga,
	bookingID int64,
	req *Request,
	bounds pricing.Bounds,
) (*domain.Payment, string, error) {
	path := receiptPath(bookingID, req.Receipt.FileName)
	removeReceipt := compensation{
		action: actionRemoveReceipt,
		run: func(ctx context.Context) error {
			return uc.receipts.Remove(ctx, path)
		},
	}

	err := s.step(stepUploadReceipt, func() error {
		return uc.receipts.Upload(ctx, path, req.Receipt.ContentType, req.Receipt.Body)
	})
	if err != nil {
		// файл мог быть записан частично
		_ = s.compensate(ctx, removeReceipt)
		return nil, "", err
	}

	var payment *domain.Payment
	err = s.step(stepCreatePayment, func() error {
		var err error
		payment, err = uc.paymentRepo.Create(ctx, &domain.Payment{
			BookingID:       bookingID,
			Amount:          req.Payment.Amount,
			CurrencyCode:    uc.opts.CurrencyCode,
			PaymentModeID:   req.Payment.PaymentModeID,
			PaymentStatusID: uc.opts.AwaitingVerificationStatusID,
			IsDownPayment:   pricing.IsDownPayment(req.Payment.Amount, bounds),
			PaymentDate:     uc.timeProvider.Now(),
		})
		return err
	})
	if err != nil {
		_ = s.compensate(ctx, removeReceipt)
		return nil, "", err
	}

	// порядок отката: файл, платеж, бронь
	s.push(actionDeletePayment, func(ctx context.Context) error {
		return uc.paymentRepo.Delete(ctx, payment.ID)
	})
	s.push(removeReceipt.action, removeReceipt.run)

	url := uc.receipts.PublicURL(path)
	err = s.step(stepCreateReference, func() error {
		_, err := uc.paymentRepo.CreateReference(ctx, &domain.PaymentReference{
			PaymentID:   payment.ID,
			ReceiptLink: url,
		})
		return err
	})
	if err != nil {
		return nil, "", err
	}

	return payment, url, nil
}
