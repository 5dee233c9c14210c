package prayertimes

import (
	"context"
	"time"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/internal/integrations/prayerservice"
)

// CacheRepository интерфейс репозитория кэша расписаний молитв
type CacheRepository interface {
	Get(ctx context.Context, date time.Time) (*domain.PrayerDay, error)
	Upsert(ctx context.Context, d *domain.PrayerDay) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PrayerServiceClient интерфейс клиента внешнего сервиса расписаний
type PrayerServiceClient interface {
	FetchTimings(ctx context.Context, date time.Time) (*prayerservice.Timings, error)
}

// MetricsRecorder счетчик исходов запросов к сервису расписаний
type MetricsRecorder interface {
	IncPrayerFetch(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
