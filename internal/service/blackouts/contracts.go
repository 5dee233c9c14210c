package blackouts

import (
	"context"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// BlackoutRepository интерфейс репозитория правил недоступности
type BlackoutRepository interface {
	GetRules(ctx context.Context) (*domain.BlackoutRules, error)
	AddWeekday(ctx context.Context, weekday time.Weekday) error
	RemoveWeekday(ctx context.Context, weekday time.Weekday) error
	AddDate(ctx context.Context, date time.Time) error
	RemoveDate(ctx context.Context, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
