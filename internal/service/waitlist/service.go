package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	waitlistRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/waitlist"
)

// Service сервис листа ожидания
// Лист разбирается администратором вручную, автоматического
// продвижения записей здесь нет
type Service struct {
	waitlistRepo WaitlistRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(waitlistRepo WaitlistRepository, logger Logger) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		logger:       logger,
	}
}

// Join добавляет пользователя в лист ожидания
func (s *Service) Join(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" || entry.ChatID == 0 {
		s.logger.Warn("Join: invalid entry chat_id=%d name=%q", entry.ChatID, entry.Name)
		return nil, ErrInvalidInput
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: repository error for chat_id=%d: %v", entry.ChatID, err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: waitlist entry id=%d created for chat_id=%d", created.ID, created.ChatID)
	return created, nil
}

// Get получает запись листа ожидания по ID
func (s *Service) Get(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	entry, err := s.waitlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Get: waitlist entry id=%d not found", id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("Get: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return entry, nil
}

// List получает записи листа ожидания в порядке добавления
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.WaitlistEntry, error) {
	entries, err := s.waitlistRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return entries, nil
}

// Remove удаляет запись из листа ожидания
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.waitlistRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Remove: waitlist entry id=%d not found", id)
			return ErrEntryNotFound
		}
		s.logger.Error("Remove: repository error for entry id=%d: %v", id, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: waitlist entry id=%d removed", id)
	return nil
}
