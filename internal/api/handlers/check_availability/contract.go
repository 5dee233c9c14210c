package check_availability

import (
	"context"
	"time"
)

type AvailabilityService interface {
	IsFree(ctx context.Context, therapistID int64, start time.Time, durationMinutes int) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
