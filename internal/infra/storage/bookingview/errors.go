package bookingview

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookingview.repository: booking not found")

	// ErrUnknownView возвращается для неизвестного представления
	ErrUnknownView = errors.New("bookingview.repository: unknown view")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingview.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingview.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingview.repository: failed to scan row")

	// ErrDecodeJSON возвращается, если JSON-колонку не удалось разобрать
	ErrDecodeJSON = errors.New("bookingview.repository: failed to decode json column")
)
