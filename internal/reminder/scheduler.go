package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/internal/integrations/notifyservice"
)

const fireTimeout = 30 * time.Second

// Scheduler планировщик напоминаний о предстоящих сеансах
// Держит по одному таймеру на подтвержденное бронирование
// Таймеры живут в памяти процесса; при рестарте они
// восстанавливаются из БД через RestoreAll
type Scheduler struct {
	bookingRepo  BookingRepository
	notifier     NotifyServiceClient
	timeProvider TimeProvider
	metrics      MetricsRecorder
	logger       Logger

	lead time.Duration

	mu     sync.Mutex
	timers map[int64]*scheduledJob
}

type scheduledJob struct {
	jobID string
	timer *time.Timer
}

// NewScheduler создает новый планировщик напоминаний
func NewScheduler(
	bookingRepo BookingRepository,
	notifier NotifyServiceClient,
	timeProvider TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
	lead time.Duration,
) *Scheduler {
	return &Scheduler{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
		lead:         lead,
		timers:       make(map[int64]*scheduledJob),
	}
}

// Schedule ставит напоминание за lead до начала сеанса
// Возвращает идентификатор таймера или пустую строку, когда
// момент срабатывания уже прошел
// Повторный вызов для того же бронирования заменяет прежний таймер
func (s *Scheduler) Schedule(booking *domain.Booking) string {
	now := s.timeProvider.Now()
	fireAt := booking.StartAt.Add(-s.lead)

	if !fireAt.After(now) {
		s.logger.Info("Schedule: booking id=%d starts too soon, no reminder", booking.ID)
		return ""
	}

	jobID := uuid.NewString()
	bookingID := booking.ID

	s.mu.Lock()
	if existing, ok := s.timers[bookingID]; ok {
		existing.timer.Stop()
	}
	s.timers[bookingID] = &scheduledJob{
		jobID: jobID,
		timer: time.AfterFunc(fireAt.Sub(now), func() {
			s.fire(bookingID, jobID)
		}),
	}
	s.mu.Unlock()

	s.logger.Info("Schedule: reminder job=%s for booking id=%d at %s",
		jobID, bookingID, fireAt.Format(time.RFC3339))
	return jobID
}

// Cancel снимает напоминание бронирования
// Отмена несуществующего таймера безопасна
func (s *Scheduler) Cancel(bookingID int64) {
	s.mu.Lock()
	job, ok := s.timers[bookingID]
	if ok {
		job.timer.Stop()
		delete(s.timers, bookingID)
	}
	s.mu.Unlock()

	if ok {
		s.logger.Info("Cancel: reminder for booking id=%d cancelled", bookingID)
	}
}

// RestoreAll пересоздает таймеры для подтвержденных будущих бронирований
// Вызывается один раз при старте процесса
func (s *Scheduler) RestoreAll(ctx context.Context) error {
	now := s.timeProvider.Now()

	bookings, err := s.bookingRepo.GetUpcomingConfirmed(ctx, now)
	if err != nil {
		return err
	}

	restored := 0
	for _, b := range bookings {
		jobID := s.Schedule(b)
		if jobID == "" {
			continue
		}
		if err := s.bookingRepo.SetReminderJobID(ctx, b.ID, &jobID); err != nil {
			s.logger.Error("RestoreAll: failed to persist job for booking id=%d: %v", b.ID, err)
			continue
		}
		restored++
	}

	s.logger.Info("RestoreAll: restored %d reminders out of %d upcoming bookings", restored, len(bookings))
	return nil
}

// Stop останавливает все таймеры
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for id, job := range s.timers {
		job.timer.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()
}

// fire выполняет сработавшее напоминание
// Перечитывает бронирование из БД: отмененное, завершенное или
// перепланированное напоминание молча пропускается
func (s *Scheduler) fire(bookingID int64, jobID string) {
	s.mu.Lock()
	job, ok := s.timers[bookingID]
	if !ok || job.jobID != jobID {
		// Таймер сняли или заменили в гонке со срабатыванием
		s.mu.Unlock()
		return
	}
	delete(s.timers, bookingID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Warn("fire: booking id=%d unavailable, skipping reminder: %v", bookingID, err)
		return
	}

	if !booking.IsConfirmed() {
		s.logger.Info("fire: booking id=%d no longer confirmed, skipping reminder", bookingID)
		return
	}
	if booking.ReminderJobID == nil || *booking.ReminderJobID != jobID {
		s.logger.Info("fire: booking id=%d reminder was rescheduled, skipping stale job=%s", bookingID, jobID)
		return
	}

	notification := &notifyservice.ReminderNotification{
		UserID:        booking.UserID,
		BookingID:     booking.ID,
		TherapistName: booking.TherapistName,
		StartAt:       booking.StartAt,
	}

	if err := s.notifier.SendReminder(ctx, notification); err != nil {
		s.logger.Error("fire: failed to send reminder for booking id=%d: %v", bookingID, err)
		return
	}

	s.metrics.IncReminderFired()

	if err := s.bookingRepo.SetReminderJobID(ctx, bookingID, nil); err != nil {
		s.logger.Error("fire: failed to clear job for booking id=%d: %v", bookingID, err)
	}

	s.logger.Info("fire: reminder sent for booking id=%d", bookingID)
}
