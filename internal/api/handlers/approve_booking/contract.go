package approve_booking

import "context"

type BookingService interface {
	Approve(ctx context.Context, bookingID int64, userID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
