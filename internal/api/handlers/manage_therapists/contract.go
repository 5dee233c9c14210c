package manage_therapists

import (
	"context"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type TherapistsService interface {
	Create(ctx context.Context, name, gender string) (*domain.Therapist, error)
	Update(ctx context.Context, id int64, upd domain.TherapistUpdate) (*domain.Therapist, error)
	SetActive(ctx context.Context, id int64, active bool) error
	ScheduleInactive(ctx context.Context, id int64, start, end time.Time) error
	CancelInactiveWindow(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
