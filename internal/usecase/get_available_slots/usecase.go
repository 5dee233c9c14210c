package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/internal/service/availability"
	"github.com/bekamcare/BKM-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
	maxDaysAhead int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityService AvailabilityService,
	logger Logger,
	maxDaysAhead int,
) *UseCase {
	return &UseCase{
		availability: availabilityService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		maxDaysAhead: maxDaysAhead,
	}
}

// Execute выполняет use case получения доступных слотов на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, therapist=%v",
		req.Date.Format(domain.DateFormat), req.TherapistID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты относительно горизонта записи
	if err := validateDate(req.Date, now, uc.maxDaysAhead); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Собираем свободные слоты
	starts, err := uc.availability.AvailableSlots(ctx, req.Date, req.TherapistID, now)
	if err != nil {
		if errors.Is(err, availability.ErrTherapistNotFound) {
			uc.logger.Warn("GetAvailableSlots: therapist id=%v not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("GetAvailableSlots: availability error: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	slots := make([]types.TimeString, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, types.NewTimeString(start))
	}

	uc.logger.Info("GetAvailableSlots: %d slots available on %s",
		len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  domain.DateOf(req.Date),
		Slots: slots,
	}, nil
}

// ExecuteDates выполняет use case списка дат с доступностью
func (uc *UseCase) ExecuteDates(ctx context.Context, req *DatesRequest) (*DatesResponse, error) {
	uc.logger.Info("GetAvailableDates: therapist=%v", req.TherapistID)

	if req.TherapistID != nil && *req.TherapistID <= 0 {
		return nil, fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	dates, err := uc.availability.AvailableDates(ctx, req.TherapistID, now)
	if err != nil {
		if errors.Is(err, availability.ErrTherapistNotFound) {
			uc.logger.Warn("GetAvailableDates: therapist id=%v not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("GetAvailableDates: availability error: %v", err)
		return nil, fmt.Errorf("%w: failed to compute dates: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableDates: %d dates with availability", len(dates))

	return &DatesResponse{Dates: dates}, nil
}
