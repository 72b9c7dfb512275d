package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhcsc-org/jhcsc-venue/internal/events"
)

// Названия шагов и компенсирующих действий (метки метрик)
const (
	stepCreateBooking   = "create_booking"
	stepCreateSchedules = "create_schedules"
	stepUploadReceipt   = "upload_receipt"
	stepCreatePayment   = "create_payment"
	stepCreateReference = "create_payment_reference"

	actionDeleteBooking = "delete_booking"
	actionDeletePayment = "delete_payment"
	actionRemoveReceipt = "remove_receipt"
)

type compensation struct {
	action string
	run    func(ctx context.Context) error
}

// saga стек компенсаций одной попытки создания бронирования.
// Откат выполняется в обратном порядке (последний добавленный первым).
type saga struct {
	uc        *UseCase
	bookingID int64

	mu     sync.Mutex
	stack  []compensation
	failed []error
}

func newSaga(uc *UseCase) *saga {
	return &saga{uc: uc}
}

func (s *saga) push(action string, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack = append(s.stack, compensation{action: action, run: run})
}

// step выполняет шаг и фиксирует результат в метриках
func (s *saga) step(name string, fn func() error) error {
	err := fn()
	s.uc.recorder.ObserveStep(name, err)
	if err != nil {
		s.uc.logger.Error("CreateBooking: step %s failed for booking id=%d: %v", name, s.bookingID, err)
		return fmt.Errorf("%w: %s: %v", ErrRemoteWrite, name, err)
	}
	return nil
}

// compensate выполняет одно компенсирующее действие.
// Контекст отвязан от отмены запроса, чтобы откат не прерывался.
func (s *saga) compensate(ctx context.Context, c compensation) error {
	ctx = context.WithoutCancel(ctx)

	err := c.run(ctx)
	s.uc.recorder.ObserveCompensation(c.action, err)
	if err == nil {
		s.uc.logger.Info("CreateBooking: compensated %s for booking id=%d", c.action, s.bookingID)
		return nil
	}

	s.uc.logger.Error("CreateBooking: compensation %s failed for booking id=%d: %v", c.action, s.bookingID, err)

	s.mu.Lock()
	s.failed = append(s.failed, fmt.Errorf("%s: %w", c.action, err))
	s.mu.Unlock()

	evt := events.CompensationFailed{
		BookingID:  s.bookingID,
		Action:     c.action,
		Reason:     err.Error(),
		OccurredAt: s.uc.timeProvider.Now(),
	}
	if pubErr := s.uc.publisher.CompensationFailed(ctx, evt); pubErr != nil {
		s.uc.logger.Warn("CreateBooking: failed to publish compensation failure: %v", pubErr)
	}

	return err
}

// unwind откатывает все накопленные шаги, продолжая при ошибках
func (s *saga) unwind(ctx context.Context) {
	s.mu.Lock()
	stack := s.stack
	s.stack = nil
	s.mu.Unlock()

	for i := len(stack) - 1; i >= 0; i-- {
		_ = s.compensate(ctx, stack[i])
	}
}

// fail откатывает сагу и возвращает исходную ошибку.
// Если хоть одна компенсация не удалась, ошибка дополнительно помечается ErrCompensation.
func (s *saga) fail(ctx context.Context, primary error) error {
	s.unwind(ctx)

	s.mu.Lock()
	failed := errors.Join(s.failed...)
	s.mu.Unlock()

	if failed != nil {
		s.uc.logger.Error("CreateBooking: booking id=%d left partially rolled back: %v", s.bookingID, failed)
		return fmt.Errorf("%w (%w)", primary, ErrCompensation)
	}
	return primary
}
