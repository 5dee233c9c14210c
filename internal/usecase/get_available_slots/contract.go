package get_available_slots

import (
	"context"
	"time"
)

// AvailabilityService интерфейс сервиса расчета доступности
type AvailabilityService interface {
	AvailableSlots(ctx context.Context, date time.Time, therapistID *int64, now time.Time) ([]time.Time, error)
	AvailableDates(ctx context.Context, therapistID *int64, now time.Time) ([]time.Time, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
