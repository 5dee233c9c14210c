package prayerprefetch

import (
	"context"
	"time"
)

// PrayerTimesService интерфейс сервиса расписаний молитв
type PrayerTimesService interface {
	Prefetch(ctx context.Context, now time.Time, days int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job прогрев кэша расписаний молитв
// Выполняется при старте и затем каждую полночь локального времени
type Job struct {
	prayerTimes  PrayerTimesService
	timeProvider TimeProvider
	logger       Logger
	days         int
	loc          *time.Location
}

// NewJob создает новый джоб прогрева кэша расписаний
func NewJob(prayerTimes PrayerTimesService, timeProvider TimeProvider, logger Logger, days int, loc *time.Location) *Job {
	return &Job{
		prayerTimes:  prayerTimes,
		timeProvider: timeProvider,
		logger:       logger,
		days:         days,
		loc:          loc,
	}
}

// Run запускает цикл прогрева; блокируется до отмены контекста
func (j *Job) Run(ctx context.Context) {
	j.logger.Info("prayer prefetch job started, horizon=%d days", j.days)

	j.prefetch(ctx)

	for {
		timer := time.NewTimer(j.untilNextMidnight())

		select {
		case <-ctx.Done():
			timer.Stop()
			j.logger.Info("prayer prefetch job stopped")
			return
		case <-timer.C:
			j.prefetch(ctx)
		}
	}
}

func (j *Job) prefetch(ctx context.Context) {
	j.prayerTimes.Prefetch(ctx, j.timeProvider.Now(), j.days)
}

func (j *Job) untilNextMidnight() time.Duration {
	now := j.timeProvider.Now().In(j.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.loc).AddDate(0, 0, 1)
	return midnight.Sub(now)
}
