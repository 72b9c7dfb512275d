package receipts

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("receipts client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе хранилища
	ErrInvalidResponse = errors.New("receipts client: invalid response")

	// ErrUnavailable возвращается, когда хранилище недоступно или разомкнут circuit breaker
	ErrUnavailable = errors.New("receipts client: storage unavailable")

	// ErrTooLarge возвращается, когда хранилище отклонило файл по размеру
	ErrTooLarge = errors.New("receipts client: file too large")
)
