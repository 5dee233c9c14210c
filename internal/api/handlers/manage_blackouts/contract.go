package manage_blackouts

import (
	"context"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type BlackoutService interface {
	GetRules(ctx context.Context) (*domain.BlackoutRules, error)
	AddWeekday(ctx context.Context, weekday int) error
	RemoveWeekday(ctx context.Context, weekday int) error
	AddDate(ctx context.Context, date time.Time) error
	RemoveDate(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
