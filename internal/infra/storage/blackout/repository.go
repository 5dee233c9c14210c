package blackout

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/pkg/dbmetrics"
	"github.com/bekamcare/BKM-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с правилами недоступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил недоступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRules получает все правила недоступности одним набором
func (r *Repository) GetRules(ctx context.Context) (*domain.BlackoutRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rules := &domain.BlackoutRules{
		Weekdays: make([]time.Weekday, 0),
		Dates:    make([]time.Time, 0),
	}

	query, args, err := psqlbuilder.Select("weekday").
		From("blackout_weekly").
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - build weekly query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - execute weekly query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		if err := rows.Scan(&weekday); err != nil {
			return nil, fmt.Errorf("%w: GetRules - scan weekday: %v", ErrScanRow, err)
		}
		rules.Weekdays = append(rules.Weekdays, time.Weekday(weekday))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRules - weekly rows error: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("date").
		From("blackout_dates").
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - build dates query: %v", ErrBuildQuery, err)
	}

	dateRows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRules - execute dates query: %v", ErrExecQuery, err)
	}
	defer dateRows.Close()

	for dateRows.Next() {
		var date time.Time
		if err := dateRows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: GetRules - scan date: %v", ErrScanRow, err)
		}
		rules.Dates = append(rules.Dates, date)
	}
	if err := dateRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRules - dates rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// AddWeekday добавляет еженедельное правило недоступности
func (r *Repository) AddWeekday(ctx context.Context, weekday time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_weekly").
		Columns("weekday").
		Values(int(weekday)).
		Suffix("ON CONFLICT (weekday) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddWeekday - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddWeekday - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveWeekday удаляет еженедельное правило недоступности
func (r *Repository) RemoveWeekday(ctx context.Context, weekday time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_weekly").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveWeekday - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveWeekday - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// AddDate добавляет разовую недоступную дату
func (r *Repository) AddDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blackout_dates").
		Columns("date").
		Values(date).
		Suffix("ON CONFLICT (date) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddDate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddDate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveDate удаляет разовую недоступную дату
func (r *Repository) RemoveDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blackout_dates").
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveDate - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
