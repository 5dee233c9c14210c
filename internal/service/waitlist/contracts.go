package waitlist

import (
	"context"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	List(ctx context.Context, limit, offset int) ([]*domain.WaitlistEntry, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
