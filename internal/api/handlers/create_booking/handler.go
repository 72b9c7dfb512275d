package create_booking

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jhcsc-org/jhcsc-venue/internal/api/handlers"
	"github.com/jhcsc-org/jhcsc-venue/internal/api/middleware"
	"github.com/jhcsc-org/jhcsc-venue/internal/domain"
	createBooking "github.com/jhcsc-org/jhcsc-venue/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidField       = "некорректное значение поля"
	msgReceiptTooLarge    = "файл чека слишком большой"
	msgVenueNotFound      = "площадка не найдена"
	msgContactSupport     = "не удалось создать бронирование и откатить изменения, обратитесь в поддержку"

	payloadField = "payload"
	receiptField = "receipt"

	// запас под JSON payload и заголовки частей формы
	multipartOverhead = 1 << 20
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var (
		req    CreateBookingRequest
		upload = &uploadedReceipt{}
	)

	if isMultipart(r) {
		var err error
		upload, err = h.parseMultipart(w, r, &req)
		if err != nil {
			h.respondParseError(w, userID, err)
			return
		}
		defer r.MultipartForm.RemoveAll()
		if upload.file != nil {
			defer upload.file.Close()
		}
	} else if err := handlers.DecodeJSON(r, &req); err != nil {
		h.respondParseError(w, userID, err)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.respondParseError(w, userID, err)
		return
	}
	useCaseReq.Receipt = upload.receipt

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var vErr *createBooking.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%s, field=%s, reason=%s", userID, vErr.Field, vErr.Reason)
			handlers.RespondFieldError(w, vErr.Field, vErr.Reason)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrCompensation):
			h.logger.Error("POST /bookings - Rollback incomplete: user_id=%s, venue_id=%d, error=%v", userID, req.VenueID, err)
			handlers.RespondBadGateway(w, msgContactSupport)

		case errors.Is(err, createBooking.ErrRemoteWrite):
			h.logger.Error("POST /bookings - Remote write failed: user_id=%s, venue_id=%d, error=%v", userID, req.VenueID, err)
			handlers.RespondBadGateway(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, venue_id=%d, error=%v", userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%s, venue_id=%d",
		result.BookingID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// uploadedReceipt чек из формы вместе с открытым файлом
type uploadedReceipt struct {
	receipt *createBooking.Receipt
	file    multipart.File
}

// parseMultipart читает payload и необязательный файл receipt
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request, req *CreateBookingRequest) (*uploadedReceipt, error) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxReceiptSize+multipartOverhead)
	if err := r.ParseMultipartForm(domain.MaxReceiptSize + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &handlers.FieldError{Field: receiptField, Rule: "max"}
		}
		return nil, err
	}

	if err := handlers.DecodeJSONBytes(strings.NewReader(r.FormValue(payloadField)), req); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile(receiptField)
	if errors.Is(err, http.ErrMissingFile) {
		return &uploadedReceipt{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &uploadedReceipt{
		receipt: &createBooking.Receipt{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		},
		file: file,
	}, nil
}

func (h *Handler) respondParseError(w http.ResponseWriter, userID string, err error) {
	h.logger.Warn("POST /bookings - Invalid request body: user_id=%s, error=%v", userID, err)

	var fErr *handlers.FieldError
	if errors.As(err, &fErr) {
		if fErr.Field == receiptField {
			handlers.RespondFieldError(w, fErr.Field, msgReceiptTooLarge)
			return
		}
		handlers.RespondFieldError(w, fErr.Field, msgInvalidField)
		return
	}
	handlers.RespondBadRequest(w, msgInvalidRequestBody)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
