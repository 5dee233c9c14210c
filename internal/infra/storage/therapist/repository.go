package therapist

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
	"id",
	"name",
	"gender",
	"active",
	"inactive_start",
	"inactive_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с терапевтами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория терапевтов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового терапевта
func (r *Repository) Create(ctx context.Context, t *domain.Therapist) (*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("therapists").
		Columns("name", "gender", "active").
		Values(t.Name, t.Gender, t.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// GetByID получает терапевта по ID
// Внутри транзакции добавляет FOR UPDATE, чтобы проверка активности
// и последующая запись выполнялись над стабильной строкой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("therapists").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := r.scanTherapist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTherapistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan therapist: %v", ErrScanRow, err)
	}

	return t, nil
}

// List получает всех терапевтов
// При activeOnly возвращает только принимающих записи
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("therapists").
		OrderBy("id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTherapists(rows)
}

// ListWithPendingWindows получает терапевтов с назначенным окном неактивности
// либо деактивированных - рабочее множество для фонового свипера
func (r *Repository) ListWithPendingWindows(ctx context.Context) ([]*domain.Therapist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("therapists").
		Where(squirrel.Or{
			squirrel.NotEq{"inactive_start": nil},
			squirrel.Eq{"active": false},
		}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithPendingWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithPendingWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTherapists(rows)
}

// Update частично обновляет данные терапевта
func (r *Repository) Update(ctx context.Context, id int64, upd domain.TherapistUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("therapists").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if upd.Gender != nil {
		updateBuilder = updateBuilder.Set("gender", *upd.Gender)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// SetActive переключает флаг активности терапевта
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("therapists").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetActive", query, args)
}

// SetInactiveWindow назначает окно неактивности (оба nil очищают окно)
func (r *Repository) SetInactiveWindow(ctx context.Context, id int64, start, end *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("therapists").
		Set("inactive_start", start).
		Set("inactive_end", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetInactiveWindow - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetInactiveWindow", query, args)
}

// Delete удаляет терапевта
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("therapists").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrTherapistNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanTherapist(row rowScanner) (*domain.Therapist, error) {
	var t domain.Therapist
	var inactiveStart, inactiveEnd sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Gender,
		&t.Active,
		&inactiveStart,
		&inactiveEnd,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if inactiveStart.Valid {
		t.InactiveStart = &inactiveStart.Time
	}
	if inactiveEnd.Valid {
		t.InactiveEnd = &inactiveEnd.Time
	}

	return &t, nil
}

func (r *Repository) scanTherapists(rows *sql.Rows) ([]*domain.Therapist, error) {
	therapists := make([]*domain.Therapist, 0)
	for rows.Next() {
		t, err := r.scanTherapist(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan therapist row: %v", ErrScanRow, err)
		}
		therapists = append(therapists, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return therapists, nil
}
