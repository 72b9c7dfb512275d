package updates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах ленты
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
