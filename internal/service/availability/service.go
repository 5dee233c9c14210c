package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	therapistRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/therapist"
)

// Service сервис расчета доступности
// Собирает кандидатов слотов и отбрасывает закрытые даты,
// интервалы молитв и занятых терапевтов
type Service struct {
	therapistRepo TherapistRepository
	bookingRepo   BookingRepository
	blackouts     BlackoutService
	prayerTimes   PrayerTimesService
	logger        Logger

	slotConfig     domain.SlotConfig
	sessionMinutes int
	maxDaysAhead   int
	loc            *time.Location
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	therapistRepo TherapistRepository,
	bookingRepo BookingRepository,
	blackouts BlackoutService,
	prayerTimes PrayerTimesService,
	logger Logger,
	slotConfig domain.SlotConfig,
	sessionMinutes int,
	maxDaysAhead int,
	loc *time.Location,
) *Service {
	return &Service{
		therapistRepo:  therapistRepo,
		bookingRepo:    bookingRepo,
		blackouts:      blackouts,
		prayerTimes:    prayerTimes,
		logger:         logger,
		slotConfig:     slotConfig,
		sessionMinutes: sessionMinutes,
		maxDaysAhead:   maxDaysAhead,
		loc:            loc,
	}
}

// AvailableSlots возвращает свободные начала сеансов на дату
// При therapistID == nil слот свободен, если свободен хотя бы
// один активный терапевт
func (s *Service) AvailableSlots(ctx context.Context, date time.Time, therapistID *int64, now time.Time) ([]time.Time, error) {
	now = now.In(s.loc)
	date = domain.DateOf(date.In(s.loc))

	blocked, err := s.isBlackout(ctx, date)
	if err != nil {
		return nil, err
	}
	if blocked {
		return []time.Time{}, nil
	}

	therapists, err := s.candidateTherapists(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	if len(therapists) == 0 {
		return []time.Time{}, nil
	}

	slots := domain.GenerateSlots(date, s.slotConfig, now)
	if len(slots) == 0 {
		return []time.Time{}, nil
	}

	prayerBlocked := s.prayerTimes.BlockedIntervalsFor(ctx, date)

	// Бронирования каждого кандидата загружаются один раз на дату
	bookingsByTherapist := make(map[int64][]*domain.Booking, len(therapists))
	for _, t := range therapists {
		bookings, err := s.bookingRepo.GetConfirmedByTherapist(ctx, t.ID)
		if err != nil {
			s.logger.Error("AvailableSlots: failed to load bookings for therapist id=%d: %v", t.ID, err)
			return nil, fmt.Errorf("%w: AvailableSlots - repository error: %v", ErrInternal, err)
		}
		bookingsByTherapist[t.ID] = bookings
	}

	duration := time.Duration(s.sessionMinutes) * time.Minute
	free := make([]time.Time, 0, len(slots))

	for _, slot := range slots {
		if startBlockedByPrayer(slot.StartAt, prayerBlocked) {
			continue
		}

		end := slot.StartAt.Add(duration)
		for _, t := range therapists {
			if t.WindowOverlaps(slot.StartAt, end) {
				continue
			}
			if hasOverlap(bookingsByTherapist[t.ID], slot.StartAt, end) {
				continue
			}
			free = append(free, slot.StartAt)
			break
		}
	}

	return free, nil
}

// AvailableDates возвращает даты горизонта записи, на которых есть хотя бы один слот
func (s *Service) AvailableDates(ctx context.Context, therapistID *int64, now time.Time) ([]time.Time, error) {
	now = now.In(s.loc)
	today := domain.DateOf(now)

	dates := make([]time.Time, 0, s.maxDaysAhead)
	for i := 0; i < s.maxDaysAhead; i++ {
		date := today.AddDate(0, 0, i)

		slots, err := s.AvailableSlots(ctx, date, therapistID, now)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			dates = append(dates, date)
		}
	}

	return dates, nil
}

// IsFree проверяет, свободен ли терапевт в интервале [start, start+duration)
// Внутри транзакции проверка блокирует строки бронирований терапевта,
// что сериализует конкурирующие записи на одного терапевта
func (s *Service) IsFree(ctx context.Context, therapistID int64, start time.Time, durationMinutes int) (bool, error) {
	therapist, err := s.therapistRepo.GetByID(ctx, therapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			return false, ErrTherapistNotFound
		}
		return false, fmt.Errorf("%w: IsFree - repository error: %v", ErrInternal, err)
	}

	if !therapist.Active {
		return false, ErrTherapistInactive
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if therapist.WindowOverlaps(start, end) {
		return false, nil
	}

	bookings, err := s.bookingRepo.GetConfirmedByTherapist(ctx, therapistID)
	if err != nil {
		return false, fmt.Errorf("%w: IsFree - repository error: %v", ErrInternal, err)
	}

	return !hasOverlap(bookings, start, end), nil
}

func (s *Service) isBlackout(ctx context.Context, date time.Time) (bool, error) {
	rules, err := s.blackouts.GetRules(ctx)
	if err != nil {
		s.logger.Error("isBlackout: failed to load blackout rules: %v", err)
		return false, fmt.Errorf("%w: isBlackout - blackout rules error: %v", ErrInternal, err)
	}

	return rules.Contains(date), nil
}

func (s *Service) candidateTherapists(ctx context.Context, therapistID *int64) ([]*domain.Therapist, error) {
	if therapistID == nil {
		therapists, err := s.therapistRepo.List(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("%w: candidateTherapists - repository error: %v", ErrInternal, err)
		}
		return therapists, nil
	}

	therapist, err := s.therapistRepo.GetByID(ctx, *therapistID)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			return nil, ErrTherapistNotFound
		}
		return nil, fmt.Errorf("%w: candidateTherapists - repository error: %v", ErrInternal, err)
	}
	if !therapist.Active {
		return []*domain.Therapist{}, nil
	}

	return []*domain.Therapist{therapist}, nil
}

func startBlockedByPrayer(start time.Time, blocked []domain.BlockedInterval) bool {
	for _, interval := range blocked {
		if interval.Contains(start) {
			return true
		}
	}
	return false
}

func hasOverlap(bookings []*domain.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if domain.Overlaps(start, end, b.StartAt, b.EndAt()) {
			return true
		}
	}
	return false
}
