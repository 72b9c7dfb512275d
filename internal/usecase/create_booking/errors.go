package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrVenueNotFound возвращается, когда площадка не найдена или удалена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrRemoteWrite возвращается, когда один из шагов записи завершился ошибкой
	ErrRemoteWrite = errors.New("create_booking: remote write failed")

	// ErrCompensation добавляется к ошибке, если откат хотя бы одного шага не удался
	ErrCompensation = errors.New("create_booking: compensation failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError ошибка валидации конкретного поля черновика
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
