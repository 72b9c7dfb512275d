package models

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
)

var (
	// ErrInvalidView возвращается при неизвестном представлении
	ErrInvalidView = errors.New("invalid booking view")

	// ErrInvalidPageSize возвращается при недопустимом размере страницы
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInvalidSort возвращается при недопустимом поле сортировки
	ErrInvalidSort = errors.New("invalid sort field")
)

var sortFields = []string{"created_at", "updated_at", "total_amount", "venue_name"}

// Request модели

// ListRequest запрос на получение одного из списков бронирований
type ListRequest struct {
	UserID   string `json:"-"`
	View     string `json:"view"`
	Search   string `json:"search,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Order    string `json:"order,omitempty"` // asc | desc
	Page     uint64 `json:"page,omitempty"`
	PageSize uint64 `json:"pageSize,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.BookingViewFilter, error) {
	view := domain.BookingViewKind(r.View)
	if r.View == "" {
		view = domain.ViewPending
	}
	if !view.IsValid() {
		return domain.BookingViewFilter{}, ErrInvalidView
	}

	pageSize := r.PageSize
	if pageSize == 0 {
		pageSize = domain.DefaultBookingsPageSize
	}
	if !slices.Contains(domain.AllowedPageSizes, pageSize) {
		return domain.BookingViewFilter{}, ErrInvalidPageSize
	}

	sort := r.Sort
	if sort == "" {
		sort = "created_at"
	}
	if !slices.Contains(sortFields, sort) {
		return domain.BookingViewFilter{}, ErrInvalidSort
	}

	page := r.Page
	if page == 0 {
		page = 1
	}

	return domain.BookingViewFilter{
		View:      view,
		UserID:    r.UserID,
		Search:    strings.TrimSpace(r.Search),
		SortField: sort,
		SortDesc:  !strings.EqualFold(r.Order, "asc"),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}, nil
}

// Response модели

// ScheduleResponse расписание бронирования
type ScheduleResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`      // "2024-11-04"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// PaymentResponse платеж бронирования
type PaymentResponse struct {
	ID                   int64   `json:"id"`
	Amount               float64 `json:"amount"`
	CurrencyCode         string  `json:"currencyCode"`
	PaymentModeID        int64   `json:"paymentModeId"`
	PaymentDate          string  `json:"paymentDate"`
	IsDownPayment        bool    `json:"isDownPayment"`
	IsConfirmed          bool    `json:"isConfirmed"`
	TransactionReference *string `json:"transactionReference,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID     int64  `json:"id"`
	UserID string `json:"userId"`
	Status string `json:"status"` // pending | approved | declined

	// Денормализованные данные
	UserName        *string `json:"userName,omitempty"`
	UserPhoneNumber *string `json:"userPhoneNumber,omitempty"`
	UserAffiliation *string `json:"userAffiliation,omitempty"`
	VenueID         int64   `json:"venueId"`
	VenueName       *string `json:"venueName,omitempty"`
	VenueLocation   *string `json:"venueLocation,omitempty"`
	VenuePhoto      *string `json:"venuePhoto,omitempty"`
	ManagerName     *string `json:"managerName,omitempty"`
	PaymentStatusID *int64  `json:"paymentStatusId,omitempty"`
	PaymentStatus   *string `json:"paymentStatus,omitempty"`

	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"` // сумма подтвержденных платежей
	IsConfirmed bool    `json:"isConfirmed"`
	IsDeleted   bool    `json:"isDeleted"`

	Schedules []ScheduleResponse `json:"schedules"`
	Payments  []PaymentResponse  `json:"payments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     uint64            `json:"page"`
	PageSize uint64            `json:"pageSize"`
}

// Методы конвертации

// FromDomainBookingView конвертирует domain модель в DTO
func FromDomainBookingView(v *domain.BookingView) *BookingResponse {
	if v == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              v.ID,
		UserID:          v.UserID,
		Status:          status(v),
		UserName:        v.UserName,
		UserPhoneNumber: v.UserPhoneNumber,
		UserAffiliation: v.UserAffiliation,
		VenueID:         v.VenueID,
		VenueName:       v.VenueName,
		VenueLocation:   v.VenueLocation,
		VenuePhoto:      v.VenuePhoto,
		ManagerName:     v.ManagerName,
		PaymentStatusID: v.PaymentStatusID,
		PaymentStatus:   v.PaymentStatus,
		TotalAmount:     v.TotalAmount,
		IsConfirmed:     v.IsConfirmed,
		IsDeleted:       v.IsDeleted,
		Schedules:       make([]ScheduleResponse, 0, len(v.Schedules)),
		Payments:        make([]PaymentResponse, 0, len(v.Payments)),
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}

	for _, s := range v.Schedules {
		resp.Schedules = append(resp.Schedules, ScheduleResponse{
			ID:        s.ID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	for _, p := range v.Payments {
		if p.ConfirmationStatus {
			resp.PaidAmount += p.Amount
		}
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:                   p.PaymentID,
			Amount:               p.Amount,
			CurrencyCode:         p.CurrencyCode,
			PaymentModeID:        p.PaymentModeID,
			PaymentDate:          p.PaymentDate,
			IsDownPayment:        p.IsDownPayment,
			IsConfirmed:          p.ConfirmationStatus,
			TransactionReference: p.TransactionReference,
		})
	}

	return resp
}

// FromDomainBookingViewList конвертирует страницу domain моделей в DTO
func FromDomainBookingViewList(items []*domain.BookingView, total int64, filter domain.BookingViewFilter) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(items)),
		Total:    total,
		PageSize: filter.Limit,
	}
	if filter.Limit > 0 {
		resp.Page = filter.Offset/filter.Limit + 1
	}

	for _, item := range items {
		if b := FromDomainBookingView(item); b != nil {
			resp.Bookings = append(resp.Bookings, *b)
		}
	}

	return resp
}

func status(v *domain.BookingView) string {
	switch {
	case v.IsDeleted:
		return string(domain.ViewDeclined)
	case v.IsConfirmed:
		return string(domain.ViewApproved)
	default:
		return string(domain.ViewPending)
	}
}
