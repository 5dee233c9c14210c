package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/internal/service/availability"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

type fakeBookingRepo struct {
	created   []*domain.Booking
	jobIDs    map[int64]*string
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{jobIDs: make(map[int64]*string)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.ID = int64(len(f.created) + 1)
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeBookingRepo) SetReminderJobID(_ context.Context, id int64, jobID *string) error {
	f.jobIDs[id] = jobID
	return nil
}

type fakeAvailability struct {
	free bool
	err  error
}

func (f *fakeAvailability) IsFree(_ context.Context, _ int64, _ time.Time, _ int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.free, nil
}

type fakeBlackouts struct {
	blocked bool
}

func (f *fakeBlackouts) IsBlackout(_ context.Context, _ time.Time) (bool, error) {
	return f.blocked, nil
}

type fakePrayerTimes struct {
	blocked []domain.BlockedInterval
}

func (f *fakePrayerTimes) BlockedIntervalsFor(_ context.Context, _ time.Time) []domain.BlockedInterval {
	return f.blocked
}

type fakeReminders struct {
	scheduled []int64
	jobID     string
}

func (f *fakeReminders) Schedule(booking *domain.Booking) string {
	f.scheduled = append(f.scheduled, booking.ID)
	return f.jobID
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

type fakeMetrics struct {
	created int
}

func (f *fakeMetrics) IncBookingCreated() {
	f.created++
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
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

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	avail       *fakeAvailability
	blackouts   *fakeBlackouts
	prayers     *fakePrayerTimes
	reminders   *fakeReminders
	metrics     *fakeMetrics
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookingRepo: newFakeBookingRepo(),
		avail:       &fakeAvailability{free: true},
		blackouts:   &fakeBlackouts{},
		prayers:     &fakePrayerTimes{},
		reminders:   &fakeReminders{jobID: "job-1"},
		metrics:     &fakeMetrics{},
	}
	f.uc = NewUseCase(
		f.bookingRepo,
		f.avail,
		f.blackouts,
		f.prayers,
		f.reminders,
		fakeTxManager{},
		f.metrics,
		noopLogger{},
		testSlotConfig(),
		40,
		30,
		jakarta,
	)
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:         42,
		TherapistID:    1,
		Date:           time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta),
		StartTime:      "10:20",
		PatientName:    "Budi Santoso",
		PatientGender:  "male",
		PatientAddress: "Jl. Sudirman 10, Jakarta",
	}
}

func testNow() time.Time {
	return time.Date(2026, 3, 10, 8, 0, 0, 0, jakarta)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(testNow())

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 10, 20, 0, 0, jakarta), resp.StartAt)
	assert.Equal(t, 40, resp.DurationMinutes)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, f.metrics.created)

	// Напоминание поставлено и его ключ сохранен
	require.Len(t, f.reminders.scheduled, 1)
	require.NotNil(t, resp.ReminderJobID)
	assert.Equal(t, "job-1", *resp.ReminderJobID)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(testNow())
	f.avail.free = false

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.bookingRepo.created)
	assert.Equal(t, 0, f.metrics.created)
	assert.Empty(t, f.reminders.scheduled)
}

func TestExecute_TherapistErrorsMapped(t *testing.T) {
	f := newFixture(testNow())
	f.avail.err = availability.ErrTherapistNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTherapistNotFound)

	f.avail.err = availability.ErrTherapistInactive
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTherapistInactive)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	f := newFixture(testNow())

	req := validRequest()
	req.StartTime = "10:30"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_BreakHourRejected(t *testing.T) {
	f := newFixture(testNow())

	req := validRequest()
	req.StartTime = "12:20"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PrayerBlockedSlot(t *testing.T) {
	f := newFixture(testNow())
	f.prayers.blocked = []domain.BlockedInterval{{
		Start: time.Date(2026, 3, 16, 10, 10, 0, 0, jakarta),
		End:   time.Date(2026, 3, 16, 10, 30, 0, 0, jakarta),
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotBlocked)
	assert.Empty(t, f.bookingRepo.created)
}

func TestExecute_BlackoutDate(t *testing.T) {
	f := newFixture(testNow())
	f.blackouts.blocked = true

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrDateUnavailable)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(testNow())

	req := validRequest()
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, jakarta)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondHorizon(t *testing.T) {
	f := newFixture(testNow())

	req := validRequest()
	req.Date = time.Date(2026, 5, 1, 0, 0, 0, 0, jakarta)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InputValidation(t *testing.T) {
	f := newFixture(testNow())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"zero therapist", func(r *Request) { r.TherapistID = 0 }},
		{"short name", func(r *Request) { r.PatientName = "A" }},
		{"bad gender", func(r *Request) { r.PatientGender = "other" }},
		{"bad time format", func(r *Request) { r.StartTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NoReminderForSoonSession(t *testing.T) {
	f := newFixture(testNow())
	f.reminders.jobID = ""

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Nil(t, resp.ReminderJobID)
	assert.Empty(t, f.bookingRepo.jobIDs)
}
