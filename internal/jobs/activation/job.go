package activation

import (
	"context"
	"time"
)

// TherapistSweeper интерфейс сервиса переключения активности терапевтов
type TherapistSweeper interface {
	Sweep(ctx context.Context, now time.Time) error
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

// Job периодический обход окон неактивности терапевтов
type Job struct {
	sweeper      TherapistSweeper
	timeProvider TimeProvider
	logger       Logger
	interval     time.Duration
}

// NewJob создает новый джоб обхода окон неактивности
func NewJob(sweeper TherapistSweeper, timeProvider TimeProvider, logger Logger, interval time.Duration) *Job {
	return &Job{
		sweeper:      sweeper,
		timeProvider: timeProvider,
		logger:       logger,
		interval:     interval,
	}
}

// Run запускает цикл обхода; блокируется до отмены контекста
// Первый проход выполняется сразу, чтобы рестарт сервиса
// не оставлял просроченные окна висеть до следующего тика
func (j *Job) Run(ctx context.Context) {
	j.logger.Info("activation job started, interval=%s", j.interval)

	j.sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("activation job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Job) sweep(ctx context.Context) {
	if err := j.sweeper.Sweep(ctx, j.timeProvider.Now()); err != nil {
		j.logger.Error("activation job: sweep failed: %v", err)
	}
}
