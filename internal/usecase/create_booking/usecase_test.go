package create_booking

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	"github.com/jhcsc-org/jhcsc-venue/internal/events"
	venueRepo "github.com/jhcsc-org/jhcsc-venue/internal/infra/storage/venue"
	"github.com/jhcsc-org/jhcsc-venue/pkg/ptr"
	"github.com/jhcsc-org/jhcsc-venue/pkg/types"
)

const (
	callCreateBooking   = "booking.create"
	callDeleteBooking   = "booking.delete"
	callCreateSchedules = "schedules.create"
	callUpload          = "receipt.upload"
	callRemove          = "receipt.remove"
	callCreatePayment   = "payment.create"
	callDeletePayment   = "payment.delete"
	callCreateReference = "payment.reference"
)

var errBackend = errors.New("backend rejected the row")

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// only оставляет только перечисленные вызовы в исходном порядке
func (l *callLog) only(names ...string) []string {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	var out []string
	for _, c := range l.all() {
		if keep[c] {
			out = append(out, c)
		}
	}
	return out
}

func (l *callLog) has(name string) bool {
	for _, c := range l.all() {
		if c == name {
			return true
		}
	}
	return false
}

type fakeVenues struct {
	venue *domain.Venue
	err   error
}

func (f *fakeVenues) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

type fakeBookings struct {
	log       *callLog
	createErr error
	deleteErr error
	created   *domain.Booking
	deleted   []int64
}

func (f *fakeBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.log.add(callCreateBooking)
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 42
	f.created = &created
	return &created, nil
}

func (f *fakeBookings) Delete(ctx context.Context, id int64) error {
	f.log.add(callDeleteBooking)
	if err := ctx.Err(); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeSchedules struct {
	log    *callLog
	err    error
	before func()
}

func (f *fakeSchedules) CreateMany(ctx context.Context, bookingID int64, entries []domain.ScheduleEntry) ([]*domain.BookingSchedule, error) {
	f.log.add(callCreateSchedules)
	if f.before != nil {
		f.before()
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.BookingSchedule, 0, len(entries))
	for i, e := range entries {
		out = append(out, &domain.BookingSchedule{
			ID:        int64(i + 1),
			BookingID: bookingID,
			Date:      e.Date,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return out, nil
}

type fakePayments struct {
	log       *callLog
	createErr error
	refErr    error
	deleteErr error
	created   *domain.Payment
	reference *domain.PaymentReference
}

func (f *fakePayments) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.log.add(callCreatePayment)
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *p
	created.ID = 7
	f.created = &created
	return &created, nil
}

func (f *fakePayments) Delete(ctx context.Context, id int64) error {
	f.log.add(callDeletePayment)
	return f.deleteErr
}

func (f *fakePayments) CreateReference(ctx context.Context, ref *domain.PaymentReference) (*domain.PaymentReference, error) {
	f.log.add(callCreateReference)
	if f.refErr != nil {
		return nil, f.refErr
	}
	f.reference = ref
	return ref, nil
}

type fakeStorage struct {
	log       *callLog
	uploadErr error
	removeErr error
	uploaded  string
	body      []byte
	removed   []string
}

func (f *fakeStorage) Upload(ctx context.Context, path, contentType string, body io.Reader) error {
	f.log.add(callUpload)
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.uploaded = path
	f.body = data
	return nil
}

func (f *fakeStorage) PublicURL(path string) string {
	return "https://storage.test/receipts/" + path
}

func (f *fakeStorage) Remove(ctx context.Context, paths ...string) error {
	f.log.add(callRemove)
	f.removed = append(f.removed, paths...)
	return f.removeErr
}

type fakePublisher struct {
	mu      sync.Mutex
	created []events.BookingCreated
	failed  []events.CompensationFailed
}

func (f *fakePublisher) BookingCreated(ctx context.Context, evt events.BookingCreated) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, evt)
	return nil
}

func (f *fakePublisher) CompensationFailed(ctx context.Context, evt events.CompensationFailed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, evt)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type harness struct {
	log       *callLog
	venues    *fakeVenues
	bookings  *fakeBookings
	schedules *fakeSchedules
	payments  *fakePayments
	storage   *fakeStorage
	publisher *fakePublisher
	opts      Options
}

func newHarness(venue *domain.Venue) *harness {
	log := &callLog{}
	return &harness{
		log:       log,
		venues:    &fakeVenues{venue: venue},
		bookings:  &fakeBookings{log: log},
		schedules: &fakeSchedules{log: log},
		payments:  &fakePayments{log: log},
		storage:   &fakeStorage{log: log},
		publisher: &fakePublisher{},
		opts:      DefaultOptions(),
	}
}

func (h *harness) useCase() *UseCase {
	uc := NewUseCase(h.venues, h.bookings, h.schedules, h.payments, h.storage, h.publisher, nil, h.opts, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2024, 11, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func freeVenue() *domain.Venue {
	return &domain.Venue{ID: 1, Name: "Covered Court", IsPaid: false, ManagerID: "manager-1"}
}

func paidVenue() *domain.Venue {
	return &domain.Venue{ID: 2, Name: "Function Hall", IsPaid: true, Rate: ptr.Ptr(500.0), ManagerID: "manager-1"}
}

func schedule(start, end string) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		Date:      time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func receipt() *Receipt {
	body := []byte("fake image bytes")
	return &Receipt{
		FileName:    "GCash Receipt.PNG",
		ContentType: "image/png",
		Size:        int64(len(body)),
		Body:        bytes.NewReader(body),
	}
}

func paidRequest(amount float64) *Request {
	return &Request{
		UserID:    "user-1",
		VenueID:   2,
		Schedules: []domain.ScheduleEntry{schedule("09:00", "17:00")},
		Payment:   &domain.PaymentDraft{Amount: amount, PaymentModeID: 1},
		Receipt:   receipt(),
	}
}

func TestExecute_FreeVenue(t *testing.T) {
	h := newHarness(freeVenue())

	req := &Request{
		UserID:    "user-1",
		VenueID:   1,
		Schedules: []domain.ScheduleEntry{schedule("09:00", "11:00"), schedule("13:00", "14:00")},
		Payment:   &domain.PaymentDraft{Amount: 100, PaymentModeID: 1},
		Receipt:   receipt(),
	}

	resp, err := h.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.BookingID)
	assert.Zero(t, resp.TotalAmount)
	assert.Equal(t, 3.0, resp.BillableHours)
	assert.Len(t, resp.Schedules, 2)
	assert.Nil(t, resp.PaymentID)
	assert.Nil(t, resp.ReceiptURL)

	// файл и платеж игнорируются для бесплатной площадки
	assert.False(t, h.log.has(callUpload))
	assert.False(t, h.log.has(callCreatePayment))
	assert.Zero(t, h.bookings.created.TotalAmount)

	require.Len(t, h.publisher.created, 1)
	assert.Equal(t, int64(42), h.publisher.created[0].BookingID)
}

func TestExecute_PaidVenueWithReceipt(t *testing.T) {
	h := newHarness(paidVenue())

	resp, err := h.useCase().Execute(context.Background(), paidRequest(2500))
	require.NoError(t, err)

	assert.Equal(t, 4000.0, resp.TotalAmount)
	require.NotNil(t, resp.PaymentID)
	assert.Equal(t, int64(7), *resp.PaymentID)
	assert.True(t, *resp.IsDownPayment)
	assert.Equal(t, "https://storage.test/receipts/payment_reference_42.PNG", *resp.ReceiptURL)

	assert.Equal(t, "payment_reference_42.PNG", h.storage.uploaded)
	assert.Equal(t, []byte("fake image bytes"), h.storage.body)

	require.NotNil(t, h.payments.created)
	assert.Equal(t, int64(42), h.payments.created.BookingID)
	assert.Equal(t, domain.DefaultAwaitingVerificationStatusID, h.payments.created.PaymentStatusID)
	assert.Equal(t, domain.DefaultCurrency, h.payments.created.CurrencyCode)
	assert.Equal(t, *resp.ReceiptURL, h.payments.reference.ReceiptLink)

	assert.Equal(t,
		[]string{callUpload, callCreatePayment, callCreateReference},
		h.log.only(callUpload, callCreatePayment, callCreateReference))
	assert.False(t, h.log.has(callDeleteBooking))
}

func TestExecute_FullPaymentIsNotDownPayment(t *testing.T) {
	h := newHarness(paidVenue())

	resp, err := h.useCase().Execute(context.Background(), paidRequest(4000))
	require.NoError(t, err)
	assert.False(t, *resp.IsDownPayment)
}

func TestExecute_PaidVenueWithoutReceipt(t *testing.T) {
	t.Run("pay later by default", func(t *testing.T) {
		h := newHarness(paidVenue())
		req := paidRequest(2000)
		req.Receipt = nil

		resp, err := h.useCase().Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 4000.0, resp.TotalAmount)
		assert.Nil(t, resp.PaymentID)
		assert.False(t, h.log.has(callCreatePayment))
	})

	t.Run("receipt required by policy", func(t *testing.T) {
		h := newHarness(paidVenue())
		h.opts.RequireReceiptForPaid = true
		req := paidRequest(2000)
		req.Receipt = nil

		_, err := h.useCase().Execute(context.Background(), req)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "receipt", vErr.Field)
		assert.Empty(t, h.log.all())
	})
}

func TestExecute_ValidationFailsBeforeAnyWrite(t *testing.T) {
	tests := []struct {
		name  string
		req   func() *Request
		field string
	}{
		{
			name:  "no schedules",
			req:   func() *Request { r := paidRequest(2000); r.Schedules = nil; return r },
			field: "schedules",
		},
		{
			name: "end before start",
			req: func() *Request {
				r := paidRequest(2000)
				r.Schedules = []domain.ScheduleEntry{schedule("12:00", "10:00")}
				return r
			},
			field: "schedules[0].end_time",
		},
		{
			name: "shorter than an hour",
			req: func() *Request {
				r := paidRequest(2000)
				r.Schedules = []domain.ScheduleEntry{schedule("09:00", "09:30")}
				return r
			},
			field: "schedules[0].end_time",
		},
		{
			name: "malformed time",
			req: func() *Request {
				r := paidRequest(2000)
				r.Schedules = []domain.ScheduleEntry{schedule("9am", "17:00")}
				return r
			},
			field: "schedules[0].start_time",
		},
		{
			name:  "amount above total",
			req:   func() *Request { return paidRequest(4000.01) },
			field: "payment.amount",
		},
		{
			name:  "amount below down payment",
			req:   func() *Request { return paidRequest(1999.99) },
			field: "payment.amount",
		},
		{
			name:  "missing payment mode",
			req:   func() *Request { r := paidRequest(2000); r.Payment.PaymentModeID = 0; return r },
			field: "payment.payment_mode_id",
		},
		{
			name:  "receipt without extension",
			req:   func() *Request { r := paidRequest(2000); r.Receipt.FileName = "receipt"; return r },
			field: "receipt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(paidVenue())

			_, err := h.useCase().Execute(context.Background(), tt.req())

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Empty(t, h.log.all(), "no writes expected")
		})
	}
}

func TestExecute_VenueNotFound(t *testing.T) {
	h := newHarness(nil)
	h.venues.err = venueRepo.ErrVenueNotFound

	_, err := h.useCase().Execute(context.Background(), paidRequest(2000))
	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.Empty(t, h.log.all())
}

func TestExecute_BookingCreateFails(t *testing.T) {
	h := newHarness(freeVenue())
	h.bookings.createErr = errBackend

	req := &Request{UserID: "user-1", VenueID: 1, Schedules: []domain.ScheduleEntry{schedule("09:00", "10:00")}}
	_, err := h.useCase().Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.NotErrorIs(t, err, ErrCompensation)
	assert.Equal(t, []string{callCreateBooking}, h.log.all())
}

// Бесплатная площадка: ошибка расписаний удаляет бронь без обращений к оплате
func TestExecute_ScheduleFailureOnFreeVenueDeletesBooking(t *testing.T) {
	h := newHarness(freeVenue())
	h.schedules.err = errors.New("schedule overlaps an existing reservation")

	req := &Request{UserID: "user-1", VenueID: 1, Schedules: []domain.ScheduleEntry{schedule("09:00", "10:00")}}
	_, err := h.useCase().Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.NotErrorIs(t, err, ErrCompensation)
	assert.Contains(t, err.Error(), "schedule overlaps an existing reservation")

	assert.Equal(t, []string{callCreateBooking, callCreateSchedules, callDeleteBooking}, h.log.all())
	assert.Equal(t, []int64{42}, h.bookings.deleted)
	assert.Empty(t, h.publisher.created)
}

func TestExecute_ScheduleFailureOnPaidVenueUnwindsEverything(t *testing.T) {
	h := newHarness(paidVenue())
	h.schedules.err = errBackend

	_, err := h.useCase().Execute(context.Background(), paidRequest(2000))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteWrite)

	// ветка оплаты завершилась, откатываются все шаги
	assert.True(t, h.log.has(callCreateReference))
	assert.Equal(t,
		[]string{callRemove, callDeletePayment, callDeleteBooking},
		h.log.only(callRemove, callDeletePayment, callDeleteBooking))
}

func TestExecute_UploadFailureRemovesFileThenBooking(t *testing.T) {
	h := newHarness(paidVenue())
	h.storage.uploadErr = errors.New("storage unavailable")

	_, err := h.useCase().Execute(context.Background(), paidRequest(2000))

	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.Contains(t, err.Error(), "storage unavailable")
	assert.False(t, h.log.has(callCreatePayment))
	assert.Equal(t,
		[]string{callRemove, callDeleteBooking},
		h.log.only(callRemove, callDeletePayment, callDeleteBooking))
	assert.Equal(t, []string{"payment_reference_42.PNG"}, h.storage.removed)
}

func TestExecute_PaymentFailureRemovesFileThenBooking(t *testing.T) {
	h := newHarness(paidVenue())
	h.payments.createErr = errBackend

	_, err := h.useCase().Execute(context.Background(), paidRequest(2000))

	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.False(t, h.log.has(callCreateReference))
	assert.Equal(t,
		[]string{callRemove, callDeleteBooking},
		h.log.only(callRemove, callDeletePayment, callDeleteBooking))
}

// Платная площадка с чеком: ошибка ссылки на чек откатывает файл, платеж и бронь по порядку
func TestExecute_ReferenceFailureUnwindsInReverseOrder(t *testing.T) {
	h := newHarness(paidVenue())
	h.payments.refErr = errors.New("duplicate receipt link")

	_, err := h.useCase().Execute(context.Background(), paidRequest(2000))

	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.Contains(t, err.Error(), "duplicate receipt link")
	assert.Equal(t,
		[]string{callRemove, callDeletePayment, callDeleteBooking},
		h.log.only(callRemove, callDeletePayment, callDeleteBooking))
}

func TestExecute_CompensationFailureKeepsPrimaryError(t *testing.T) {
	h := newHarness(freeVenue())
	h.schedules.err = errors.New("schedule insert failed")
	h.bookings.deleteErr = errors.New("connection reset")

	req := &Request{UserID: "user-1", VenueID: 1, Schedules: []domain.ScheduleEntry{schedule("09:00", "10:00")}}
	_, err := h.useCase().Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.ErrorIs(t, err, ErrCompensation)
	assert.Contains(t, err.Error(), "schedule insert failed")
	assert.NotContains(t, err.Error(), "connection reset")

	require.Len(t, h.publisher.failed, 1)
	assert.Equal(t, int64(42), h.publisher.failed[0].BookingID)
	assert.Equal(t, actionDeleteBooking, h.publisher.failed[0].Action)
}

func TestExecute_CompensationRunsAfterCancel(t *testing.T) {
	h := newHarness(freeVenue())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// клиент отключился во время записи расписаний
	h.schedules.before = cancel
	h.schedules.err = context.Canceled

	req := &Request{UserID: "user-1", VenueID: 1, Schedules: []domain.ScheduleEntry{schedule("09:00", "10:00")}}
	_, err := h.useCase().Execute(ctx, req)

	assert.ErrorIs(t, err, ErrRemoteWrite)
	assert.NotErrorIs(t, err, ErrCompensation)
	assert.Equal(t, []int64{42}, h.bookings.deleted)
}

func TestReceiptPathKeepsExtensionCase(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "upper case", fileName: "Receipt.JPG", want: "payment_reference_7.JPG"},
		{name: "lower case", fileName: "receipt.jpg", want: "payment_reference_7.jpg"},
		{name: "last dot wins", fileName: "gcash.2024.03.pdf", want: "payment_reference_7.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, receiptPath(7, tt.fileName))
		})
	}
}
