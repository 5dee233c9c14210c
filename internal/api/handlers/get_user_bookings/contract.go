package get_user_bookings

import (
	"context"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type BookingsService interface {
	GetUserBookings(ctx context.Context, userID int64, upcomingOnly bool, limit, offset int) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
