package therapists

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	therapistRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/therapist"
	"github.com/bekamcare/BKM-BookingService/pkg/ptr"
)

type fakeTherapistRepo struct {
	therapists map[int64]*domain.Therapist
}

func newFakeTherapistRepo(therapists ...*domain.Therapist) *fakeTherapistRepo {
	repo := &fakeTherapistRepo{therapists: make(map[int64]*domain.Therapist)}
	for _, t := range therapists {
		repo.therapists[t.ID] = t
	}
	return repo
}

func (f *fakeTherapistRepo) Create(_ context.Context, t *domain.Therapist) (*domain.Therapist, error) {
	created := *t
	created.ID = int64(len(f.therapists) + 1)
	f.therapists[created.ID] = &created
	return &created, nil
}

func (f *fakeTherapistRepo) GetByID(_ context.Context, id int64) (*domain.Therapist, error) {
	t, ok := f.therapists[id]
	if !ok {
		return nil, therapistRepo.ErrTherapistNotFound
	}
	copied := *t
	return &copied, nil
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

func (f *fakeTherapistRepo) ListWithPendingWindows(_ context.Context) ([]*domain.Therapist, error) {
	var out []*domain.Therapist
	for _, t := range f.therapists {
		if t.HasInactiveWindow() || !t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTherapistRepo) Update(_ context.Context, id int64, upd domain.TherapistUpdate) error {
	t, ok := f.therapists[id]
	if !ok {
		return therapistRepo.ErrTherapistNotFound
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Gender != nil {
		t.Gender = *upd.Gender
	}
	return nil
}

func (f *fakeTherapistRepo) SetActive(_ context.Context, id int64, active bool) error {
	t, ok := f.therapists[id]
	if !ok {
		return therapistRepo.ErrTherapistNotFound
	}
	t.Active = active
	return nil
}

func (f *fakeTherapistRepo) SetInactiveWindow(_ context.Context, id int64, start, end *time.Time) error {
	t, ok := f.therapists[id]
	if !ok {
		return therapistRepo.ErrTherapistNotFound
	}
	t.InactiveStart = start
	t.InactiveEnd = end
	return nil
}

func (f *fakeTherapistRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.therapists[id]; !ok {
		return therapistRepo.ErrTherapistNotFound
	}
	delete(f.therapists, id)
	return nil
}

type fakeBookingCounter struct {
	counts map[int64]int
}

func (f *fakeBookingCounter) CountConfirmedByTherapist(_ context.Context, therapistID int64) (int, error) {
	return f.counts[therapistID], nil
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
	flips map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{flips: make(map[string]int)}
}

func (f *fakeMetrics) IncSweeperFlip(direction string) {
	f.flips[direction]++
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

func newTestService(repo *fakeTherapistRepo, counts map[int64]int) (*Service, *fakeMetrics) {
	metrics := newFakeMetrics()
	svc := NewService(repo, &fakeBookingCounter{counts: counts}, fakeTxManager{},
		&fixedTimeProvider{now: time.Now()}, metrics, noopLogger{})
	return svc, metrics
}

func TestSweep_DeactivatesWhenWindowStarts(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)
	repo := newFakeTherapistRepo(&domain.Therapist{
		ID:            1,
		Active:        true,
		InactiveStart: ptr.Ptr(now.Add(-time.Hour)),
		InactiveEnd:   ptr.Ptr(now.Add(24 * time.Hour)),
	})
	svc, metrics := newTestService(repo, nil)

	require.NoError(t, svc.Sweep(context.Background(), now))

	assert.False(t, repo.therapists[1].Active)
	assert.Equal(t, 1, metrics.flips["deactivated"])
}

func TestSweep_ReactivatesAndClearsWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)
	repo := newFakeTherapistRepo(&domain.Therapist{
		ID:            1,
		Active:        false,
		InactiveStart: ptr.Ptr(now.Add(-48 * time.Hour)),
		InactiveEnd:   ptr.Ptr(now.Add(-time.Hour)),
	})
	svc, metrics := newTestService(repo, nil)

	require.NoError(t, svc.Sweep(context.Background(), now))

	assert.True(t, repo.therapists[1].Active)
	assert.Nil(t, repo.therapists[1].InactiveStart)
	assert.Nil(t, repo.therapists[1].InactiveEnd)
	assert.Equal(t, 1, metrics.flips["reactivated"])
}

func TestSweep_LeavesFutureWindowUntouched(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)
	repo := newFakeTherapistRepo(&domain.Therapist{
		ID:            1,
		Active:        true,
		InactiveStart: ptr.Ptr(now.Add(time.Hour)),
		InactiveEnd:   ptr.Ptr(now.Add(48 * time.Hour)),
	})
	svc, metrics := newTestService(repo, nil)

	require.NoError(t, svc.Sweep(context.Background(), now))

	assert.True(t, repo.therapists[1].Active)
	assert.NotNil(t, repo.therapists[1].InactiveStart)
	assert.Empty(t, metrics.flips)
}

func TestSetActive_ManualDeactivationClearsWindow(t *testing.T) {
	now := time.Now()
	repo := newFakeTherapistRepo(&domain.Therapist{
		ID:            1,
		Active:        true,
		InactiveStart: ptr.Ptr(now.Add(time.Hour)),
		InactiveEnd:   ptr.Ptr(now.Add(24 * time.Hour)),
	})
	svc, _ := newTestService(repo, nil)

	require.NoError(t, svc.SetActive(context.Background(), 1, false))

	assert.False(t, repo.therapists[1].Active)
	// Окно снято и в эту сторону, иначе свипер включил бы терапевта
	// обратно по истечении inactiveEnd вопреки ручному выключению
	assert.Nil(t, repo.therapists[1].InactiveStart)
	assert.Nil(t, repo.therapists[1].InactiveEnd)
}

func TestSetActive_ManualActivationClearsWindow(t *testing.T) {
	now := time.Now()
	repo := newFakeTherapistRepo(&domain.Therapist{
		ID:            1,
		Active:        false,
		InactiveStart: ptr.Ptr(now.Add(-time.Hour)),
		InactiveEnd:   ptr.Ptr(now.Add(24 * time.Hour)),
	})
	svc, _ := newTestService(repo, nil)

	require.NoError(t, svc.SetActive(context.Background(), 1, true))

	assert.True(t, repo.therapists[1].Active)
	// Окно снято, иначе следующий проход свипера снова выключил бы терапевта
	assert.Nil(t, repo.therapists[1].InactiveStart)
	assert.Nil(t, repo.therapists[1].InactiveEnd)
}

func TestDelete_RejectsTherapistWithActiveBookings(t *testing.T) {
	repo := newFakeTherapistRepo(&domain.Therapist{ID: 1, Active: true})
	svc, _ := newTestService(repo, map[int64]int{1: 2})

	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrHasActiveBookings)
	assert.Contains(t, repo.therapists, int64(1))
}

func TestDelete_RemovesTherapistWithoutBookings(t *testing.T) {
	repo := newFakeTherapistRepo(&domain.Therapist{ID: 1, Active: true})
	svc, _ := newTestService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))

	assert.NotContains(t, repo.therapists, int64(1))
}

func TestCreate_ValidatesInput(t *testing.T) {
	repo := newFakeTherapistRepo()
	svc, _ := newTestService(repo, nil)

	_, err := svc.Create(context.Background(), "  ", "female")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "Siti", "other")
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.Create(context.Background(), "Siti", "female")
	require.NoError(t, err)
	assert.True(t, created.Active)
}

func TestScheduleInactive_RejectsInvertedWindow(t *testing.T) {
	repo := newFakeTherapistRepo(&domain.Therapist{ID: 1, Active: true})
	svc, _ := newTestService(repo, nil)

	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	err := svc.ScheduleInactive(context.Background(), 1, start, start.Add(-time.Hour))

	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestScheduleInactive_StartedWindowDeactivatesImmediately(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeTherapistRepo(&domain.Therapist{ID: 1, Active: true})
	svc, _ := newTestService(repo, nil)
	svc.timeProvider = &fixedTimeProvider{now: now}

	err := svc.ScheduleInactive(context.Background(), 1, now.Add(-time.Minute), now.Add(72*time.Hour))
	require.NoError(t, err)

	assert.False(t, repo.therapists[1].Active)
	assert.NotNil(t, repo.therapists[1].InactiveStart)
	assert.NotNil(t, repo.therapists[1].InactiveEnd)
}

func TestScheduleInactive_FutureWindowKeepsActive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeTherapistRepo(&domain.Therapist{ID: 1, Active: true})
	svc, _ := newTestService(repo, nil)
	svc.timeProvider = &fixedTimeProvider{now: now}

	err := svc.ScheduleInactive(context.Background(), 1, now.Add(time.Hour), now.Add(72*time.Hour))
	require.NoError(t, err)

	assert.True(t, repo.therapists[1].Active)
	assert.NotNil(t, repo.therapists[1].InactiveStart)
}

func TestCancelInactiveWindow_ReactivatesSweptTherapist(t *testing.T) {
	now := time.Now()
	repo := newFakeTherapistRepo(&domain.Therapist{
		ID:            1,
		Active:        false,
		InactiveStart: ptr.Ptr(now.Add(-time.Hour)),
		InactiveEnd:   ptr.Ptr(now.Add(24 * time.Hour)),
	})
	svc, _ := newTestService(repo, nil)

	require.NoError(t, svc.CancelInactiveWindow(context.Background(), 1))

	assert.True(t, repo.therapists[1].Active)
	assert.Nil(t, repo.therapists[1].InactiveStart)
}
