package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/internal/integrations/notifyservice"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	upcoming []*domain.Booking
	jobIDs   map[int64]*string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		jobIDs:   make(map[int64]*string),
	}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetUpcomingConfirmed(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.upcoming, nil
}

func (f *fakeBookingRepo) put(b *domain.Booking) {
	f.mu.Lock()
	f.bookings[b.ID] = b
	f.mu.Unlock()
}

func (f *fakeBookingRepo) SetReminderJobID(_ context.Context, id int64, jobID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobIDs[id] = jobID
	if b, ok := f.bookings[id]; ok {
		b.ReminderJobID = jobID
	}
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []*notifyservice.ReminderNotification
	ch   chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan struct{}, 10)}
}

func (f *fakeNotifier) SendReminder(_ context.Context, n *notifyservice.ReminderNotification) error {
	f.mu.Lock()
	f.sent = append(f.sent, n)
	f.mu.Unlock()
	f.ch <- struct{}{}
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeMetrics struct {
	mu    sync.Mutex
	fired int
}

func (f *fakeMetrics) IncReminderFired() {
	f.mu.Lock()
	f.fired++
	f.mu.Unlock()
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestScheduler(repo *fakeBookingRepo, notifier *fakeNotifier, now time.Time, lead time.Duration) *Scheduler {
	return NewScheduler(repo, notifier, &fixedTimeProvider{now: now}, &fakeMetrics{}, noopLogger{}, lead)
}

func TestScheduler_Schedule_PastFireTimeReturnsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo()
	s := newTestScheduler(repo, newFakeNotifier(), now, 30*time.Minute)
	defer s.Stop()

	// Сеанс через 20 минут, напоминание за 30 было бы в прошлом
	jobID := s.Schedule(&domain.Booking{ID: 1, StartAt: now.Add(20 * time.Minute)})

	assert.Empty(t, jobID)
}

func TestScheduler_Schedule_ReplacesExistingTimer(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo()
	s := newTestScheduler(repo, newFakeNotifier(), now, 30*time.Minute)
	defer s.Stop()

	booking := &domain.Booking{ID: 1, StartAt: now.Add(2 * time.Hour)}

	first := s.Schedule(booking)
	second := s.Schedule(booking)

	require.NotEmpty(t, first)
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)

	s.mu.Lock()
	job := s.timers[1]
	s.mu.Unlock()
	require.NotNil(t, job)
	assert.Equal(t, second, job.jobID)
}

func TestScheduler_Cancel_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo()
	s := newTestScheduler(repo, newFakeNotifier(), now, 30*time.Minute)
	defer s.Stop()

	s.Schedule(&domain.Booking{ID: 1, StartAt: now.Add(2 * time.Hour)})

	s.Cancel(1)
	s.Cancel(1)
	s.Cancel(99)

	s.mu.Lock()
	_, ok := s.timers[1]
	s.mu.Unlock()
	assert.False(t, ok)
}

func TestScheduler_Fire_SendsReminder(t *testing.T) {
	now := time.Now()
	repo := newFakeBookingRepo()
	notifier := newFakeNotifier()
	s := newTestScheduler(repo, notifier, now, 30*time.Minute)
	defer s.Stop()

	// fireAt через 300ms: StartAt = now + lead + 300ms
	booking := &domain.Booking{
		ID:            1,
		UserID:        42,
		TherapistName: "Siti",
		StartAt:       now.Add(30*time.Minute + 300*time.Millisecond),
		Status:        domain.StatusConfirmed,
	}
	jobID := s.Schedule(booking)
	require.NotEmpty(t, jobID)

	booking.ReminderJobID = &jobID
	repo.put(booking)

	select {
	case <-notifier.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("reminder was not sent")
	}

	require.Equal(t, 1, notifier.sentCount())
	assert.Equal(t, int64(42), notifier.sent[0].UserID)

	// После срабатывания ключ в БД очищается
	assert.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		job, ok := repo.jobIDs[1]
		return ok && job == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_Fire_SkipsCancelledBooking(t *testing.T) {
	now := time.Now()
	repo := newFakeBookingRepo()
	notifier := newFakeNotifier()
	s := newTestScheduler(repo, notifier, now, 30*time.Minute)
	defer s.Stop()

	booking := &domain.Booking{
		ID:      1,
		StartAt: now.Add(30*time.Minute + 300*time.Millisecond),
		Status:  domain.StatusCancelled,
	}
	jobID := s.Schedule(booking)
	require.NotEmpty(t, jobID)

	booking.ReminderJobID = &jobID
	repo.put(booking)

	time.Sleep(600 * time.Millisecond)
	assert.Equal(t, 0, notifier.sentCount())
}

func TestScheduler_RestoreAll(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo()
	repo.upcoming = []*domain.Booking{
		{ID: 1, StartAt: now.Add(2 * time.Hour), Status: domain.StatusConfirmed},
		{ID: 2, StartAt: now.Add(10 * time.Minute), Status: domain.StatusConfirmed},
	}

	s := newTestScheduler(repo, newFakeNotifier(), now, 30*time.Minute)
	defer s.Stop()

	require.NoError(t, s.RestoreAll(context.Background()))

	repo.mu.Lock()
	defer repo.mu.Unlock()
	// Первый восстановлен, второй начинается слишком скоро
	require.NotNil(t, repo.jobIDs[1])
	_, scheduledSecond := repo.jobIDs[2]
	assert.False(t, scheduledSecond)
}
