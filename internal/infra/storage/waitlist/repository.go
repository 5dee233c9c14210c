package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bekamcare/BKM-BookingService/internal/domain"
	"github.com/bekamcare/BKM-BookingService/pkg/dbmetrics"
	"github.com/bekamcare/BKM-BookingService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"chat_id",
	"name",
	"phone",
	"gender",
	"requested_date",
	"created_at",
}

// Repository репозиторий для работы с листом ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в лист ожидания
func (r *Repository) Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist").
		Columns("chat_id", "name", "phone", "gender", "requested_date").
		Values(e.ChatID, e.Name, e.Phone, e.Gender, e.RequestedDate).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return e, nil
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("waitlist").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.WaitlistEntry
	var phone sql.NullString
	var requestedDate sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&e.ID, &e.ChatID, &e.Name, &phone, &e.Gender, &requestedDate, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan waitlist entry: %v", ErrScanRow, err)
	}

	if phone.Valid {
		e.Phone = &phone.String
	}
	if requestedDate.Valid {
		e.RequestedDate = &requestedDate.Time
	}

	return &e, nil
}

// List получает записи листа ожидания в порядке добавления
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("waitlist").
		OrderBy("created_at ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit)).Offset(uint64(offset))
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

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		var e domain.WaitlistEntry
		var phone sql.NullString
		var requestedDate sql.NullTime

		err := rows.Scan(&e.ID, &e.ChatID, &e.Name, &phone, &e.Gender, &requestedDate, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scan waitlist row: %v", ErrScanRow, err)
		}

		if phone.Valid {
			e.Phone = &phone.String
		}
		if requestedDate.Valid {
			e.RequestedDate = &requestedDate.Time
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Delete удаляет запись из листа ожидания
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
