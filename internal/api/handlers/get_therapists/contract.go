package get_therapists

import (
	"context"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

type TherapistsService interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Therapist, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
