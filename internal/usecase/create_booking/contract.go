package create_booking

import (
	"context"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetReminderJobID(ctx context.Context, id int64, jobID *string) error
}

// AvailabilityService интерфейс сервиса расчета доступности
type AvailabilityService interface {
	IsFree(ctx context.Context, therapistID int64, start time.Time, durationMinutes int) (bool, error)
}

// BlackoutService интерфейс сервиса правил недоступности
type BlackoutService interface {
	IsBlackout(ctx context.Context, date time.Time) (bool, error)
}

// PrayerTimesService интерфейс сервиса расписаний молитв
type PrayerTimesService interface {
	BlockedIntervalsFor(ctx context.Context, date time.Time) []domain.BlockedInterval
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	Schedule(booking *domain.Booking) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder счетчик созданных бронирований
type MetricsRecorder interface {
	IncBookingCreated()
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
