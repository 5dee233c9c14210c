package blackouts

import (
	"context"
	"fmt"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
)

// Service сервис правил недоступности
type Service struct {
	blackoutRepo BlackoutRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса правил недоступности
func NewService(blackoutRepo BlackoutRepository, logger Logger) *Service {
	return &Service{
		blackoutRepo: blackoutRepo,
		logger:       logger,
	}
}

// GetRules получает все правила недоступности
func (s *Service) GetRules(ctx context.Context) (*domain.BlackoutRules, error) {
	rules, err := s.blackoutRepo.GetRules(ctx)
	if err != nil {
		s.logger.Error("GetRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetRules - repository error: %v", ErrInternal, err)
	}

	return rules, nil
}

// IsBlackout проверяет, закрыта ли дата для записи
func (s *Service) IsBlackout(ctx context.Context, date time.Time) (bool, error) {
	rules, err := s.GetRules(ctx)
	if err != nil {
		return false, err
	}

	return rules.Contains(date), nil
}

// AddWeekday добавляет еженедельное правило недоступности
func (s *Service) AddWeekday(ctx context.Context, weekday int) error {
	if weekday < 0 || weekday > 6 {
		s.logger.Warn("AddWeekday: invalid weekday=%d", weekday)
		return ErrInvalidWeekday
	}

	if err := s.blackoutRepo.AddWeekday(ctx, time.Weekday(weekday)); err != nil {
		s.logger.Error("AddWeekday: repository error for weekday=%d: %v", weekday, err)
		return fmt.Errorf("%w: AddWeekday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddWeekday: weekday=%s is now blocked", time.Weekday(weekday))
	return nil
}

// RemoveWeekday удаляет еженедельное правило недоступности
func (s *Service) RemoveWeekday(ctx context.Context, weekday int) error {
	if weekday < 0 || weekday > 6 {
		s.logger.Warn("RemoveWeekday: invalid weekday=%d", weekday)
		return ErrInvalidWeekday
	}

	if err := s.blackoutRepo.RemoveWeekday(ctx, time.Weekday(weekday)); err != nil {
		s.logger.Error("RemoveWeekday: repository error for weekday=%d: %v", weekday, err)
		return fmt.Errorf("%w: RemoveWeekday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveWeekday: weekday=%s is open again", time.Weekday(weekday))
	return nil
}

// AddDate добавляет разовую недоступную дату
func (s *Service) AddDate(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		return ErrInvalidDate
	}

	if err := s.blackoutRepo.AddDate(ctx, domain.DateOf(date)); err != nil {
		s.logger.Error("AddDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: AddDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddDate: date=%s is now blocked", date.Format(domain.DateFormat))
	return nil
}

// RemoveDate удаляет разовую недоступную дату
func (s *Service) RemoveDate(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		return ErrInvalidDate
	}

	if err := s.blackoutRepo.RemoveDate(ctx, domain.DateOf(date)); err != nil {
		s.logger.Error("RemoveDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: RemoveDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveDate: date=%s is open again", date.Format(domain.DateFormat))
	return nil
}
