package availability

import (
	"context"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Therapist, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedByTherapist(ctx context.Context, therapistID int64) ([]*domain.Booking, error)
}

// BlackoutService интерфейс сервиса правил недоступности
type BlackoutService interface {
	GetRules(ctx context.Context) (*domain.BlackoutRules, error)
}

// PrayerTimesService интерфейс сервиса расписаний молитв
type PrayerTimesService interface {
	BlockedIntervalsFor(ctx context.Context, date time.Time) []domain.BlockedInterval
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
