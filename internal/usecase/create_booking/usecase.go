package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/internal/service/availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityService
	blackouts    BlackoutService
	prayerTimes  PrayerTimesService
	reminders    ReminderScheduler
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger

	slotConfig     domain.SlotConfig
	sessionMinutes int
	maxDaysAhead   int
	loc            *time.Location
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityService AvailabilityService,
	blackouts BlackoutService,
	prayerTimes PrayerTimesService,
	reminders ReminderScheduler,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
	slotConfig domain.SlotConfig,
	sessionMinutes int,
	maxDaysAhead int,
	loc *time.Location,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		availability:   availabilityService,
		blackouts:      blackouts,
		prayerTimes:    prayerTimes,
		reminders:      reminders,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		metrics:        metrics,
		logger:         logger,
		slotConfig:     slotConfig,
		sessionMinutes: sessionMinutes,
		maxDaysAhead:   maxDaysAhead,
		loc:            loc,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и запись выполняются в одной сериализуемой
// транзакции, поэтому два конкурирующих запроса на один интервал
// терапевта не могут закоммититься оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, therapist=%d, date=%s, time=%s",
		req.UserID, req.TherapistID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().In(uc.loc)
	date := domain.DateOf(req.Date.In(uc.loc))

	// 3. Валидация даты относительно горизонта записи
	if err := validateDate(date, now, uc.maxDaysAhead); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Закрытые даты
	blocked, err := uc.blackouts.IsBlackout(ctx, date)
	if err != nil {
		uc.logger.Error("CreateBooking: blackout check failed: %v", err)
		return nil, fmt.Errorf("%w: blackout check failed: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Warn("CreateBooking: date %s is not available", date.Format(domain.DateFormat))
		return nil, ErrDateUnavailable
	}

	// 5. Привязываем время слота к дате
	startAt, err := req.StartTime.At(date, uc.loc)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid start time: %v", err)
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// 6. Начало должно попадать в сетку слотов дня
	if err := validateOnSlotGrid(startAt, date, now, uc.slotConfig); err != nil {
		uc.logger.Warn("CreateBooking: time %s is not on the slot grid", req.StartTime)
		return nil, err
	}

	// 7. Интервалы молитв; при недоступности расписания проверка пропускается
	for _, interval := range uc.prayerTimes.BlockedIntervalsFor(ctx, date) {
		if interval.Contains(startAt) {
			uc.logger.Warn("CreateBooking: time %s is blocked by prayer window", req.StartTime)
			return nil, ErrSlotBlocked
		}
	}

	booking := &domain.Booking{
		UserID:          req.UserID,
		PatientName:     strings.TrimSpace(req.PatientName),
		PatientGender:   req.PatientGender,
		PatientAddress:  strings.TrimSpace(req.PatientAddress),
		TherapistID:     req.TherapistID,
		StartAt:         startAt,
		DurationMinutes: uc.sessionMinutes,
		Status:          domain.StatusConfirmed,
	}

	// 8. Проверка занятости и запись одной сериализуемой транзакцией
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		free, err := uc.availability.IsFree(txCtx, req.TherapistID, startAt, uc.sessionMinutes)
		if err != nil {
			return err
		}
		if !free {
			return ErrSlotNotAvailable
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, availability.ErrTherapistNotFound):
			uc.logger.Warn("CreateBooking: therapist id=%d not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		case errors.Is(err, availability.ErrTherapistInactive):
			uc.logger.Warn("CreateBooking: therapist id=%d is inactive", req.TherapistID)
			return nil, ErrTherapistInactive
		case errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Warn("CreateBooking: therapist id=%d is busy at %s %s",
				req.TherapistID, date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 9. Напоминание ставится после коммита: сбой планировщика
	// не должен откатывать уже записанный сеанс
	if jobID := uc.reminders.Schedule(result); jobID != "" {
		if err := uc.bookingRepo.SetReminderJobID(ctx, result.ID, &jobID); err != nil {
			uc.logger.Error("CreateBooking: failed to persist reminder job for booking id=%d: %v",
				result.ID, err)
		} else {
			result.ReminderJobID = &jobID
		}
	}

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		TherapistID:     result.TherapistID,
		TherapistName:   result.TherapistName,
		StartAt:         result.StartAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		PatientName:     result.PatientName,
		PatientGender:   result.PatientGender,
		PatientAddress:  result.PatientAddress,
		ReminderJobID:   result.ReminderJobID,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
