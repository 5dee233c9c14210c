package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	bookingRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, upcomingOnly bool, now time.Time, _, _ int) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if upcomingOnly && (!b.IsConfirmed() || !b.StartAt.After(now)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) List(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) SetReminderJobID(_ context.Context, id int64, jobID *string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.ReminderJobID = jobID
	return nil
}

type fakeReminders struct {
	cancelled []int64
}

func (f *fakeReminders) Cancel(bookingID int64) {
	f.cancelled = append(f.cancelled, bookingID)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeMetrics struct {
	cancelled int
}

func (f *fakeMetrics) IncBookingCancelled() {
	f.cancelled++
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestService(repo *fakeBookingRepo, now time.Time) (*Service, *fakeReminders, *fakeMetrics) {
	reminders := &fakeReminders{}
	metrics := &fakeMetrics{}
	svc := NewService(repo, reminders, fakeTxManager{}, &fixedTimeProvider{now: now}, metrics, noopLogger{})
	return svc, reminders, metrics
}

func confirmedBooking(id, userID int64, start time.Time) *domain.Booking {
	jobID := "job-1"
	return &domain.Booking{
		ID:              id,
		UserID:          userID,
		TherapistID:     1,
		StartAt:         start,
		DurationMinutes: 40,
		Status:          domain.StatusConfirmed,
		ReminderJobID:   &jobID,
	}
}

func TestGetByID_OwnershipCheck(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(confirmedBooking(1, 42, now.Add(24*time.Hour)))
	svc, _, _ := newTestService(repo, now)

	booking, err := svc.GetByID(context.Background(), 1, 42, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)

	_, err = svc.GetByID(context.Background(), 1, 7, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Администратор видит чужое бронирование
	_, err = svc.GetByID(context.Background(), 1, 7, true)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 99, 42, false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_Success(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(confirmedBooking(1, 42, now.Add(24*time.Hour)))
	svc, reminders, metrics := newTestService(repo, now)

	require.NoError(t, svc.Cancel(context.Background(), 1, 42, false))

	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Nil(t, repo.bookings[1].ReminderJobID)
	assert.Equal(t, []int64{1}, reminders.cancelled)
	assert.Equal(t, 1, metrics.cancelled)
}

func TestCancel_AccessDenied(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(confirmedBooking(1, 42, now.Add(24*time.Hour)))
	svc, reminders, _ := newTestService(repo, now)

	err := svc.Cancel(context.Background(), 1, 7, false)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Empty(t, reminders.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	b := confirmedBooking(1, 42, now.Add(24*time.Hour))
	b.Status = domain.StatusCancelled
	repo := newFakeBookingRepo(b)
	svc, _, metrics := newTestService(repo, now)

	err := svc.Cancel(context.Background(), 1, 42, false)

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 0, metrics.cancelled)
}

func TestUpdateStatus_CompletedClearsReminder(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(confirmedBooking(1, 42, now.Add(24*time.Hour)))
	svc, reminders, metrics := newTestService(repo, now)

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, "completed"))

	assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
	assert.Nil(t, repo.bookings[1].ReminderJobID)
	assert.Equal(t, []int64{1}, reminders.cancelled)
	assert.Equal(t, 0, metrics.cancelled)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo(confirmedBooking(1, 42, now.Add(24*time.Hour)))
	svc, _, _ := newTestService(repo, now)

	err := svc.UpdateStatus(context.Background(), 1, "pending")

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetUserBookings_UpcomingOnly(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	past := confirmedBooking(1, 42, now.Add(-24*time.Hour))
	future := confirmedBooking(2, 42, now.Add(24*time.Hour))
	cancelled := confirmedBooking(3, 42, now.Add(48*time.Hour))
	cancelled.Status = domain.StatusCancelled

	repo := newFakeBookingRepo(past, future, cancelled)
	svc, _, _ := newTestService(repo, now)

	upcoming, err := svc.GetUserBookings(context.Background(), 42, true, 50, 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, int64(2), upcoming[0].ID)

	all, err := svc.GetUserBookings(context.Background(), 42, false, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
