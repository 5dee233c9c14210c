package prayertimes

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	prayercacheRepo "github.com/bekamcare/BKM-BookingService/internal/infra/storage/prayercache"
	"github.com/bekamcare/BKM-BookingService/pkg/types"
)

const dateKeyFormat = "2006-01-02"

// Service сервис расписаний молитв
// Разрешает расписание на дату тремя уровнями: память процесса,
// кэш в БД, внешний провайдер. Недоступность провайдера никогда
// не блокирует запись - в этом случае интервалы просто пустые
type Service struct {
	cacheRepo CacheRepository
	client    PrayerServiceClient
	metrics   MetricsRecorder
	logger    Logger

	halfWidth time.Duration
	loc       *time.Location

	mu   sync.RWMutex
	memo map[string]*domain.PrayerDay
}

// NewService создает новый экземпляр сервиса расписаний молитв
func NewService(
	cacheRepo CacheRepository,
	client PrayerServiceClient,
	metrics MetricsRecorder,
	logger Logger,
	halfWidth time.Duration,
	loc *time.Location,
) *Service {
	return &Service{
		cacheRepo: cacheRepo,
		client:    client,
		metrics:   metrics,
		logger:    logger,
		halfWidth: halfWidth,
		loc:       loc,
		memo:      make(map[string]*domain.PrayerDay),
	}
}

// BlockedIntervalsFor возвращает запрещенные интервалы вокруг времен молитв на дату
// При полной недоступности расписания возвращает пустой срез
func (s *Service) BlockedIntervalsFor(ctx context.Context, date time.Time) []domain.BlockedInterval {
	day, err := s.dayFor(ctx, date)
	if err != nil {
		s.logger.Warn("BlockedIntervalsFor: timetable unavailable for date=%s, slots will not be blocked: %v",
			date.Format(dateKeyFormat), err)
		return nil
	}

	return day.BlockedIntervals(s.halfWidth, s.loc)
}

// Prefetch прогревает кэш на days дней вперед начиная с now
// и вычищает записи старше вчерашнего дня
func (s *Service) Prefetch(ctx context.Context, now time.Time, days int) {
	local := now.In(s.loc)

	for i := 0; i < days; i++ {
		date := domain.DateOf(local.AddDate(0, 0, i))
		if _, err := s.dayFor(ctx, date); err != nil {
			s.logger.Warn("Prefetch: failed to warm date=%s: %v", date.Format(dateKeyFormat), err)
		}
	}

	s.evict(ctx, local)
}

// evict удаляет из памяти и из БД расписания старше вчерашнего дня
func (s *Service) evict(ctx context.Context, now time.Time) {
	cutoff := domain.DateOf(now).AddDate(0, 0, -1)

	s.mu.Lock()
	for key, day := range s.memo {
		if day.Date.Before(cutoff) {
			delete(s.memo, key)
		}
	}
	s.mu.Unlock()

	deleted, err := s.cacheRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("evict: failed to clean prayer cache: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("evict: removed %d stale prayer cache entries", deleted)
	}
}

// dayFor разрешает расписание на дату: память -> БД -> провайдер
func (s *Service) dayFor(ctx context.Context, date time.Time) (*domain.PrayerDay, error) {
	key := date.Format(dateKeyFormat)

	s.mu.RLock()
	day, ok := s.memo[key]
	s.mu.RUnlock()
	if ok {
		return day, nil
	}

	day, err := s.cacheRepo.Get(ctx, date)
	if err == nil {
		s.remember(key, day)
		return day, nil
	}
	if !errors.Is(err, prayercacheRepo.ErrDayNotFound) {
		s.logger.Error("dayFor: cache read failed for date=%s: %v", key, err)
	}

	timings, err := s.client.FetchTimings(ctx, date)
	if err != nil {
		s.metrics.IncPrayerFetch("error")
		return nil, err
	}
	s.metrics.IncPrayerFetch("success")

	day = &domain.PrayerDay{
		Date:    domain.DateOf(date),
		Fajr:    types.TimeString(timings.Fajr),
		Dhuhr:   types.TimeString(timings.Dhuhr),
		Asr:     types.TimeString(timings.Asr),
		Maghrib: types.TimeString(timings.Maghrib),
		Isha:    types.TimeString(timings.Isha),
	}

	if err := s.cacheRepo.Upsert(ctx, day); err != nil {
		s.logger.Error("dayFor: failed to persist timetable for date=%s: %v", key, err)
	}

	s.remember(key, day)
	return day, nil
}

func (s *Service) remember(key string, day *domain.PrayerDay) {
	s.mu.Lock()
	s.memo[key] = day
	s.mu.Unlock()
}
