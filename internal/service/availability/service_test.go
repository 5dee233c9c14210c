package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	therapistRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/therapist"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

type fakeTherapistRepo struct {
	therapists map[int64]*domain.Therapist
}

func (f *fakeTherapistRepo) GetByID(_ context.Context, id int64) (*domain.Therapist, error) {
	t, ok := f.therapists[id]
	if !ok {
		return nil, therapistRepo.ErrTherapistNotFound
	}
	return t, nil
}

func (f *fakeTherapistRepo) List(_ context.Context, activeOnly bool) ([]*domain.Therapist, error) {
	var out []*domain.Therapist
	for _, t := range f.therapists {
		if activeOnly && !t.Active {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type fakeBookingRepo struct {
	byTherapist map[int64][]*domain.Booking
}

func (f *fakeBookingRepo) GetConfirmedByTherapist(_ context.Context, therapistID int64) ([]*domain.Booking, error) {
	return f.byTherapist[therapistID], nil
}

type fakeBlackouts struct {
	rules domain.BlackoutRules
}

func (f *fakeBlackouts) GetRules(_ context.Context) (*domain.BlackoutRules, error) {
	return &f.rules, nil
}

type fakePrayerTimes struct {
	blocked []domain.BlockedInterval
}

func (f *fakePrayerTimes) BlockedIntervalsFor(_ context.Context, _ time.Time) []domain.BlockedInterval {
	return f.blocked
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func testSlotConfig() domain.SlotConfig {
	return domain.SlotConfig{
		StartHour:               9,
		EndHour:                 18,
		BreakStartHour:          12,
		BreakEndHour:            13,
		IntervalMinutes:         40,
		MinBookingBufferMinutes: 5,
	}
}

func newTestService(
	therapists *fakeTherapistRepo,
	bookings *fakeBookingRepo,
	blackouts *fakeBlackouts,
	prayers *fakePrayerTimes,
) *Service {
	return NewService(
		therapists,
		bookings,
		blackouts,
		prayers,
		noopLogger{},
		testSlotConfig(),
		40,
		30,
		jakarta,
	)
}

func activeTherapist(id int64) *domain.Therapist {
	return &domain.Therapist{ID: id, Name: "Siti", Gender: "female", Active: true}
}

func booking(therapistID int64, start time.Time, minutes int) *domain.Booking {
	return &domain.Booking{
		TherapistID:     therapistID,
		StartAt:         start,
		DurationMinutes: minutes,
		Status:          domain.StatusConfirmed,
	}
}

func TestAvailableSlots_BlackoutDateIsEmpty(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, jakarta) // воскресенье
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)

	svc := newTestService(
		&fakeTherapistRepo{therapists: map[int64]*domain.Therapist{1: activeTherapist(1)}},
		&fakeBookingRepo{},
		&fakeBlackouts{rules: domain.BlackoutRules{Weekdays: []time.Weekday{time.Sunday}}},
		&fakePrayerTimes{},
	)

	slots, err := svc.AvailableSlots(context.Background(), date, nil, now)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_BookedSlotHiddenWithSingleTherapist(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)
	bookedStart := time.Date(2026, 3, 16, 10, 20, 0, 0, jakarta)

	therapistID := int64(1)
	svc := newTestService(
		&fakeTherapistRepo{therapists: map[int64]*domain.Therapist{1: activeTherapist(1)}},
		&fakeBookingRepo{byTherapist: map[int64][]*domain.Booking{
			1: {booking(1, bookedStart, 40)},
		}},
		&fakeBlackouts{},
		&fakePrayerTimes{},
	)

	slots, err := svc.AvailableSlots(context.Background(), date, &therapistID, now)

	require.NoError(t, err)
	assert.NotContains(t, slots, bookedStart)
	// Смежные слоты не затронуты
	assert.Contains(t, slots, time.Date(2026, 3, 16, 9, 40, 0, 0, jakarta))
	assert.Contains(t, slots, time.Date(2026, 3, 16, 11, 0, 0, 0, jakarta))
}

func TestAvailableSlots_SecondTherapistKeepsSlotFree(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)
	bookedStart := time.Date(2026, 3, 16, 10, 20, 0, 0, jakarta)

	svc := newTestService(
		&fakeTherapistRepo{therapists: map[int64]*domain.Therapist{
			1: activeTherapist(1),
			2: activeTherapist(2),
		}},
		&fakeBookingRepo{byTherapist: map[int64][]*domain.Booking{
			1: {booking(1, bookedStart, 40)},
		}},
		&fakeBlackouts{},
		&fakePrayerTimes{},
	)

	slots, err := svc.AvailableSlots(context.Background(), date, nil, now)

	require.NoError(t, err)
	assert.Contains(t, slots, bookedStart)
}

func TestAvailableSlots_PrayerIntervalBlocksStart(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)

	// Намаз в 15:00: интервал [14:50, 15:10) накрывает слот 15:00
	svc := newTestService(
		&fakeTherapistRepo{therapists: map[int64]*domain.Therapist{1: activeTherapist(1)}},
		&fakeBookingRepo{},
		&fakeBlackouts{},
		&fakePrayerTimes{blocked: []domain.BlockedInterval{{
			Start: time.Date(2026, 3, 16, 14, 50, 0, 0, jakarta),
			End:   time.Date(2026, 3, 16, 15, 10, 0, 0, jakarta),
		}}},
	)

	slots, err := svc.AvailableSlots(context.Background(), date, nil, now)

	require.NoError(t, err)
	assert.NotContains(t, slots, time.Date(2026, 3, 16, 15, 0, 0, 0, jakarta))
	assert.Contains(t, slots, time.Date(2026, 3, 16, 14, 20, 0, 0, jakarta))
	assert.Contains(t, slots, time.Date(2026, 3, 16, 15, 40, 0, 0, jakarta))
}

func TestAvailableSlots_UnknownTherapist(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)

	therapistID := int64(99)
	svc := newTestService(
		&fakeTherapistRepo{therapists: map[int64]*domain.Therapist{}},
		&fakeBookingRepo{},
		&fakeBlackouts{},
		&fakePrayerTimes{},
	)

	_, err := svc.AvailableSlots(context.Background(), date, &therapistID, now)

	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestIsFree(t *testing.T) {
	bookedStart := time.Date(2026, 3, 16, 10, 0, 0, 0, jakarta)

	therapists := &fakeTherapistRepo{therapists: map[int64]*domain.Therapist{
		1: activeTherapist(1),
		2: {ID: 2, Name: "Ahmad", Gender: "male", Active: false},
	}}
	bookings := &fakeBookingRepo{byTherapist: map[int64][]*domain.Booking{
		1: {booking(1, bookedStart, 40)},
	}}
	svc := newTestService(therapists, bookings, &fakeBlackouts{}, &fakePrayerTimes{})

	// Пересечение с занятым интервалом [10:00, 10:40)
	free, err := svc.IsFree(context.Background(), 1, bookedStart.Add(20*time.Minute), 40)
	require.NoError(t, err)
	assert.False(t, free)

	// Смежный интервал, начинающийся точно в 10:40
	free, err = svc.IsFree(context.Background(), 1, bookedStart.Add(40*time.Minute), 40)
	require.NoError(t, err)
	assert.True(t, free)

	_, err = svc.IsFree(context.Background(), 2, bookedStart, 40)
	assert.ErrorIs(t, err, ErrTherapistInactive)

	_, err = svc.IsFree(context.Background(), 99, bookedStart, 40)
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestIsFree_InactiveWindowBlocks(t *testing.T) {
	winStart := time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta)
	winEnd := time.Date(2026, 3, 20, 0, 0, 0, 0, jakarta)

	th := activeTherapist(1)
	th.InactiveStart = &winStart
	th.InactiveEnd = &winEnd

	svc := newTestService(
		&fakeTherapistRepo{therapists: map[int64]*domain.Therapist{1: th}},
		&fakeBookingRepo{},
		&fakeBlackouts{},
		&fakePrayerTimes{},
	)

	free, err := svc.IsFree(context.Background(), 1, time.Date(2026, 3, 17, 10, 0, 0, 0, jakarta), 40)
	require.NoError(t, err)
	assert.False(t, free)

	free, err = svc.IsFree(context.Background(), 1, winEnd.Add(10*time.Hour), 40)
	require.NoError(t, err)
	assert.True(t, free)
}
