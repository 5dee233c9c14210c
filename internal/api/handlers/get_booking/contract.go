package get_booking

import (
	"context"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type BookingsService interface {
	GetByID(ctx context.Context, id, userID int64, isAdmin bool) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
