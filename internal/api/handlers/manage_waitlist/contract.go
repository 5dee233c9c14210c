package manage_waitlist

import (
	"context"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type WaitlistService interface {
	Get(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	List(ctx context.Context, limit, offset int) ([]*domain.WaitlistEntry, error)
	Remove(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
