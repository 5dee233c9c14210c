package therapists

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	therapistRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/therapist"
)

const (
	flipDeactivated = "deactivated"
	flipReactivated = "reactivated"
)

// Service сервис управления терапевтами
type Service struct {
	therapistRepo TherapistRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	timeProvider  TimeProvider
	metrics       MetricsRecorder
	logger        Logger
}

// NewService создает новый экземпляр сервиса терапевтов
func NewService(
	therapistRepo TherapistRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		therapistRepo: therapistRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		timeProvider:  timeProvider,
		metrics:       metrics,
		logger:        logger,
	}
}

// List получает терапевтов, опционально только активных
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*domain.Therapist, error) {
	therapists, err := s.therapistRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return therapists, nil
}

// GetByID получает терапевта по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Therapist, error) {
	therapist, err := s.therapistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("GetByID: therapist id=%d not found", id)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("GetByID: repository error for therapist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return therapist, nil
}

// Create создает нового терапевта
func (s *Service) Create(ctx context.Context, name, gender string) (*domain.Therapist, error) {
	name = strings.TrimSpace(name)
	if name == "" || !validGender(gender) {
		s.logger.Warn("Create: invalid input name=%q gender=%q", name, gender)
		return nil, ErrInvalidInput
	}

	therapist := &domain.Therapist{
		Name:   name,
		Gender: gender,
		Active: true,
	}

	created, err := s.therapistRepo.Create(ctx, therapist)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created therapist id=%d name=%s", created.ID, created.Name)
	return created, nil
}

// Update частично обновляет данные терапевта
func (s *Service) Update(ctx context.Context, id int64, upd domain.TherapistUpdate) (*domain.Therapist, error) {
	if upd.Name == nil && upd.Gender == nil {
		return nil, ErrInvalidInput
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, ErrInvalidInput
	}
	if upd.Gender != nil && !validGender(*upd.Gender) {
		return nil, ErrInvalidInput
	}

	if err := s.therapistRepo.Update(ctx, id, upd); err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("Update: therapist id=%d not found", id)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("Update: repository error for therapist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated therapist id=%d", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет терапевта
// Запрещено при наличии подтвержденных бронирований
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.therapistRepo.GetByID(ctx, id); err != nil {
			return err
		}

		count, err := s.bookingRepo.CountConfirmedByTherapist(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrHasActiveBookings
		}

		return s.therapistRepo.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("Delete: therapist id=%d not found", id)
			return ErrTherapistNotFound
		}
		if errors.Is(err, ErrHasActiveBookings) {
			s.logger.Warn("Delete: therapist id=%d has active bookings", id)
			return ErrHasActiveBookings
		}
		s.logger.Error("Delete: failed for therapist id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted therapist id=%d", id)
	return nil
}

// SetActive переключает флаг активности терапевта вручную
// Ручной переключатель снимает запланированное окно неактивности в обе стороны,
// иначе свипер перекрыл бы ручное решение на ближайшем проходе
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		therapist, err := s.therapistRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if therapist.HasInactiveWindow() {
			if err := s.therapistRepo.SetInactiveWindow(ctx, id, nil, nil); err != nil {
				return err
			}
		}

		return s.therapistRepo.SetActive(ctx, id, active)
	})

	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("SetActive: therapist id=%d not found", id)
			return ErrTherapistNotFound
		}
		s.logger.Error("SetActive: failed for therapist id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: therapist id=%d active=%t", id, active)
	return nil
}

// ScheduleInactive назначает окно неактивности [start, end)
func (s *Service) ScheduleInactive(ctx context.Context, id int64, start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		s.logger.Warn("ScheduleInactive: invalid window for therapist id=%d", id)
		return ErrInvalidWindow
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.therapistRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.therapistRepo.SetInactiveWindow(ctx, id, &start, &end); err != nil {
			return err
		}

		// Окно уже началось: выключаем сразу, не дожидаясь свипера
		if !start.After(s.timeProvider.Now()) {
			return s.therapistRepo.SetActive(ctx, id, false)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("ScheduleInactive: therapist id=%d not found", id)
			return ErrTherapistNotFound
		}
		s.logger.Error("ScheduleInactive: failed for therapist id=%d: %v", id, err)
		return fmt.Errorf("%w: ScheduleInactive - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("ScheduleInactive: therapist id=%d window [%s, %s)", id,
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	return nil
}

// CancelInactiveWindow снимает запланированное окно неактивности
func (s *Service) CancelInactiveWindow(ctx context.Context, id int64) error {
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		therapist, err := s.therapistRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.therapistRepo.SetInactiveWindow(ctx, id, nil, nil); err != nil {
			return err
		}

		// Терапевт, уже выключенный свипером, возвращается в строй
		if !therapist.Active {
			return s.therapistRepo.SetActive(ctx, id, true)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, therapistRepo.ErrTherapistNotFound) {
			s.logger.Warn("CancelInactiveWindow: therapist id=%d not found", id)
			return ErrTherapistNotFound
		}
		s.logger.Error("CancelInactiveWindow: failed for therapist id=%d: %v", id, err)
		return fmt.Errorf("%w: CancelInactiveWindow - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelInactiveWindow: therapist id=%d window cleared", id)
	return nil
}

// Sweep переключает активность терапевтов по их окнам неактивности
// Вызывается фоновым джобом; now передается снаружи для детерминизма
func (s *Service) Sweep(ctx context.Context, now time.Time) error {
	var deactivated, reactivated int

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		therapists, err := s.therapistRepo.ListWithPendingWindows(ctx)
		if err != nil {
			return err
		}

		for _, t := range therapists {
			switch {
			case t.DueForDeactivation(now):
				if err := s.therapistRepo.SetActive(ctx, t.ID, false); err != nil {
					return err
				}
				deactivated++
			case t.DueForReactivation(now):
				if err := s.therapistRepo.SetActive(ctx, t.ID, true); err != nil {
					return err
				}
				if err := s.therapistRepo.SetInactiveWindow(ctx, t.ID, nil, nil); err != nil {
					return err
				}
				reactivated++
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Sweep: failed: %v", err)
		return fmt.Errorf("%w: Sweep - transaction error: %v", ErrInternal, err)
	}

	for i := 0; i < deactivated; i++ {
		s.metrics.IncSweeperFlip(flipDeactivated)
	}
	for i := 0; i < reactivated; i++ {
		s.metrics.IncSweeperFlip(flipReactivated)
	}

	if deactivated > 0 || reactivated > 0 {
		s.logger.Info("Sweep: deactivated=%d reactivated=%d", deactivated, reactivated)
	}
	return nil
}

func validGender(gender string) bool {
	return gender == "male" || gender == "female"
}
