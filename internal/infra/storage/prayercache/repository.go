package prayercache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/pkg/dbmetrics"
	"github.com/bekamcare/BKM-BookingService/pkg/psqlbuilder"
)

var columns = []string{
	"date",
	"fajr",
	"dhuhr",
	"asr",
	"maghrib",
	"isha",
	"created_at",
}

// Repository репозиторий кэша расписаний молитв
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кэша молитв
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает расписание молитв на дату
func (r *Repository) Get(ctx context.Context, date time.Time) (*domain.PrayerDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("prayer_cache").
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.PrayerDay
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&d.Date,
		&d.Fajr,
		&d.Dhuhr,
		&d.Asr,
		&d.Maghrib,
		&d.Isha,
		&d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan prayer day: %v", ErrScanRow, err)
	}

	return &d, nil
}

// Upsert сохраняет расписание молитв на дату, заменяя прежнее
func (r *Repository) Upsert(ctx context.Context, d *domain.PrayerDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("prayer_cache").
		Columns("date", "fajr", "dhuhr", "asr", "maghrib", "isha").
		Values(d.Date, d.Fajr, d.Dhuhr, d.Asr, d.Maghrib, d.Isha).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
			fajr = EXCLUDED.fajr,
			dhuhr = EXCLUDED.dhuhr,
			asr = EXCLUDED.asr,
			maghrib = EXCLUDED.maghrib,
			isha = EXCLUDED.isha,
			created_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteOlderThan удаляет записи кэша старше указанной даты
// Возвращает число удаленных записей
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("prayer_cache").
		Where(squirrel.Lt{"date": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
