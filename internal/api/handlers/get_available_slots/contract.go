package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/bekamcare/BKM-BookingService/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
	ExecuteDates(ctx context.Context, req *getAvailableSlots.DatesRequest) (*getAvailableSlots.DatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
