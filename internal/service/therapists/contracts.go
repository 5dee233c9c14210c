package therapists

import (
	"context"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// TherapistRepository интерфейс репозитория терапевтов
type TherapistRepository interface {
	Create(ctx context.Context, t *domain.Therapist) (*domain.Therapist, error)
	GetByID(ctx context.Context, id int64) (*domain.Therapist, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Therapist, error)
	ListWithPendingWindows(ctx context.Context) ([]*domain.Therapist, error)
	Update(ctx context.Context, id int64, upd domain.TherapistUpdate) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetInactiveWindow(ctx context.Context, id int64, start, end *time.Time) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountConfirmedByTherapist(ctx context.Context, therapistID int64) (int, error)
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

// MetricsRecorder счетчик переключений активности терапевтов
type MetricsRecorder interface {
	IncSweeperFlip(direction string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
