package prayertimes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	prayercacheRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/prayercache"
	"github.com/bekamcare/BKM-BookingService/internal/integrations/prayerservice"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

type fakeCacheRepo struct {
	days    map[string]*domain.PrayerDay
	upserts int
	deleted int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{days: make(map[string]*domain.PrayerDay)}
}

func (f *fakeCacheRepo) Get(_ context.Context, date time.Time) (*domain.PrayerDay, error) {
	day, ok := f.days[date.Format(dateKeyFormat)]
	if !ok {
		return nil, prayercacheRepo.ErrDayNotFound
	}
	return day, nil
}

func (f *fakeCacheRepo) Upsert(_ context.Context, d *domain.PrayerDay) error {
	f.upserts++
	f.days[d.Date.Format(dateKeyFormat)] = d
	return nil
}

func (f *fakeCacheRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	for key, day := range f.days {
		if day.Date.Before(cutoff) {
			delete(f.days, key)
			f.deleted++
		}
	}
	return f.deleted, nil
}

type fakePrayerClient struct {
	timings *prayerservice.Timings
	err     error
	calls   int
}

func (f *fakePrayerClient) FetchTimings(_ context.Context, _ time.Time) (*prayerservice.Timings, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.timings, nil
}

type fakeMetrics struct {
	fetches map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{fetches: make(map[string]int)}
}

func (f *fakeMetrics) IncPrayerFetch(status string) {
	f.fetches[status]++
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func defaultTimings() *prayerservice.Timings {
	return &prayerservice.Timings{
		Fajr:    "04:45",
		Dhuhr:   "12:00",
		Asr:     "15:15",
		Maghrib: "18:10",
		Isha:    "19:20",
	}
}

func newTestService(cache *fakeCacheRepo, client *fakePrayerClient) (*Service, *fakeMetrics) {
	metrics := newFakeMetrics()
	svc := NewService(cache, client, metrics, noopLogger{}, 10*time.Minute, jakarta)
	return svc, metrics
}

func TestBlockedIntervalsFor_FetchesAndCaches(t *testing.T) {
	cache := newFakeCacheRepo()
	client := &fakePrayerClient{timings: defaultTimings()}
	svc, metrics := newTestService(cache, client)

	date := time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta)

	intervals := svc.BlockedIntervalsFor(context.Background(), date)

	require.Len(t, intervals, 5)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 1, cache.upserts)
	assert.Equal(t, 1, metrics.fetches["success"])

	// Dhuhr 12:00 +- 10 минут
	assert.Equal(t, time.Date(2026, 3, 16, 11, 50, 0, 0, jakarta), intervals[1].Start)
	assert.Equal(t, time.Date(2026, 3, 16, 12, 10, 0, 0, jakarta), intervals[1].End)

	// Повторный запрос обслуживается из памяти
	svc.BlockedIntervalsFor(context.Background(), date)
	assert.Equal(t, 1, client.calls)
}

func TestBlockedIntervalsFor_DBCacheSkipsProvider(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta)

	cache := newFakeCacheRepo()
	cache.days[date.Format(dateKeyFormat)] = &domain.PrayerDay{
		Date:  date,
		Dhuhr: "12:00",
	}
	client := &fakePrayerClient{timings: defaultTimings()}
	svc, _ := newTestService(cache, client)

	intervals := svc.BlockedIntervalsFor(context.Background(), date)

	require.Len(t, intervals, 1)
	assert.Equal(t, 0, client.calls)
}

func TestBlockedIntervalsFor_ProviderFailureFailsOpen(t *testing.T) {
	cache := newFakeCacheRepo()
	client := &fakePrayerClient{err: errors.New("connection refused")}
	svc, metrics := newTestService(cache, client)

	intervals := svc.BlockedIntervalsFor(context.Background(),
		time.Date(2026, 3, 16, 0, 0, 0, 0, jakarta))

	// Недоступность провайдера не блокирует слоты
	assert.Empty(t, intervals)
	assert.Equal(t, 1, metrics.fetches["error"])
}

func TestPrefetch_WarmsAndEvicts(t *testing.T) {
	now := time.Date(2026, 3, 16, 6, 0, 0, 0, jakarta)

	cache := newFakeCacheRepo()
	// Протухшая запись двухдневной давности
	stale := time.Date(2026, 3, 13, 0, 0, 0, 0, jakarta)
	cache.days[stale.Format(dateKeyFormat)] = &domain.PrayerDay{Date: stale, Dhuhr: "12:00"}

	client := &fakePrayerClient{timings: defaultTimings()}
	svc, _ := newTestService(cache, client)

	svc.Prefetch(context.Background(), now, 3)

	assert.Equal(t, 3, client.calls)
	assert.NotContains(t, cache.days, stale.Format(dateKeyFormat))
	// Сегодня и два следующих дня прогреты
	assert.Contains(t, cache.days, "2026-03-16")
	assert.Contains(t, cache.days, "2026-03-18")
}
