package update_booking_status

import "context"

type BookingsService interface {
	UpdateStatus(ctx context.Context, bookingID int64, status string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
