package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	bookingRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/booking"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	reminders    ReminderScheduler
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	reminders ReminderScheduler,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		reminders:    reminders,
		txManager:    txManager,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свое бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id, userID int64, isAdmin bool) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// GetUserBookings получает бронирования пользователя
// При upcomingOnly возвращает только подтвержденные будущие сеансы
func (s *Service) GetUserBookings(ctx context.Context, userID int64, upcomingOnly bool, limit, offset int) ([]*domain.Booking, error) {
	now := s.timeProvider.Now()

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID, upcomingOnly, now, limit, offset)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return bookings, nil
}

// List получает бронирования с административной фильтрацией
func (s *Service) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return bookings, nil
}

// Cancel отменяет бронирование и снимает его напоминание
// Пользователь может отменить только свое бронирование
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64, isAdmin bool) error {
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if !isAdmin && booking.UserID != userID {
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			return ErrCannotCancel
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCancelled); err != nil {
			return err
		}

		return s.bookingRepo.SetReminderJobID(ctx, bookingID, nil)
	})

	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", userID, bookingID)
			return ErrAccessDenied
		case errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	// Снятие таймера после коммита: опоздавшее срабатывание само
	// увидит отмененный статус и промолчит
	s.reminders.Cancel(bookingID)
	s.metrics.IncBookingCancelled()

	s.logger.Info("Cancel: booking id=%d cancelled by user=%d", bookingID, userID)
	return nil
}

// UpdateStatus обновляет статус бронирования (административная операция)
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, status string) error {
	newStatus, ok := domain.ToBookingStatus(status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", status, bookingID)
		return ErrInvalidStatus
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			return err
		}

		// Уход из confirmed делает напоминание ненужным
		if booking.IsConfirmed() && newStatus != domain.StatusConfirmed {
			return s.bookingRepo.SetReminderJobID(ctx, bookingID, nil)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - transaction error: %v", ErrInternal, err)
	}

	if newStatus != domain.StatusConfirmed {
		s.reminders.Cancel(bookingID)
	}
	if newStatus == domain.StatusCancelled {
		s.metrics.IncBookingCancelled()
	}

	s.logger.Info("UpdateStatus: booking id=%d set to status=%s", bookingID, newStatus)
	return nil
}
