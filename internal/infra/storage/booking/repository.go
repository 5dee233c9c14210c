package booking

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

// joinedColumns колонки бронирования с денормализованным именем терапевта
var joinedColumns = []string{
	"b.id",
	"b.user_id",
	"b.patient_name",
	"b.patient_gender",
	"b.patient_address",
	"b.therapist_id",
	"b.start_at",
	"b.duration_minutes",
	"b.status",
	"b.reminder_job_id",
	"b.created_at",
	"b.updated_at",
	"t.name AS therapist_name",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// путь коммита всегда вызывает Create внутри DoSerializable,
// чтобы проверка доступности и запись были одним атомарным блоком
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"patient_name",
			"patient_gender",
			"patient_address",
			"therapist_id",
			"start_at",
			"duration_minutes",
			"status",
		).
		Values(
			b.UserID,
			b.PatientName,
			b.PatientGender,
			b.PatientAddress,
			b.TherapistID,
			b.StartAt,
			b.DurationMinutes,
			b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(joinedColumns...).
		From("bookings b").
		LeftJoin("therapists t ON t.id = b.therapist_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetConfirmedByTherapist получает подтвержденные бронирования терапевта
// Внутри транзакции добавляет FOR UPDATE OF b - именно этот вызов на пути
// коммита блокирует конкурирующие проверки доступности того же терапевта
func (r *Repository) GetConfirmedByTherapist(ctx context.Context, therapistID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(joinedColumns...).
		From("bookings b").
		LeftJoin("therapists t ON t.id = b.therapist_id").
		Where(squirrel.Eq{"b.therapist_id": therapistID, "b.status": domain.StatusConfirmed}).
		OrderBy("b.start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByTherapist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByTherapist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByUserID получает бронирования пользователя с пагинацией
// При upcomingOnly возвращает только подтвержденные будущие сеансы
func (r *Repository) GetByUserID(ctx context.Context, userID int64, upcomingOnly bool, now time.Time, limit, offset int) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(joinedColumns...).
		From("bookings b").
		LeftJoin("therapists t ON t.id = b.therapist_id").
		Where(squirrel.Eq{"b.user_id": userID})

	if upcomingOnly {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"b.status": domain.StatusConfirmed}).
			Where(squirrel.Gt{"b.start_at": now}).
			OrderBy("b.start_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.start_at DESC")
	}

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit)).Offset(uint64(offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с административной фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(joinedColumns...).
		From("bookings b").
		LeftJoin("therapists t ON t.id = b.therapist_id").
		OrderBy("b.start_at DESC")

	if filter.TherapistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.therapist_id": *filter.TherapistID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.start_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"b.start_at": filter.EndDate.AddDate(0, 0, 1)})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
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

	return r.scanBookings(rows)
}

// GetUpcomingConfirmed получает все подтвержденные бронирования позже now
// Используется при старте процесса для восстановления напоминаний
func (r *Repository) GetUpcomingConfirmed(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(joinedColumns...).
		From("bookings b").
		LeftJoin("therapists t ON t.id = b.therapist_id").
		Where(squirrel.Eq{"b.status": domain.StatusConfirmed}).
		Where(squirrel.Gt{"b.start_at": now}).
		OrderBy("b.start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SetReminderJobID сохраняет ключ напоминания (nil очищает)
func (r *Repository) SetReminderJobID(ctx context.Context, id int64, jobID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_job_id", jobID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetReminderJobID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetReminderJobID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetReminderJobID - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CountConfirmedByTherapist подсчитывает подтвержденные бронирования терапевта
// Используется для запрета удаления терапевта с активными сеансами
func (r *Repository) CountConfirmedByTherapist(ctx context.Context, therapistID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"therapist_id": therapistID, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByTherapist - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedByTherapist - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var therapistName sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.PatientName,
		&b.PatientGender,
		&b.PatientAddress,
		&b.TherapistID,
		&b.StartAt,
		&b.DurationMinutes,
		&b.Status,
		&b.ReminderJobID,
		&createdAt,
		&updatedAt,
		&therapistName,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	b.TherapistName = therapistName.String

	return &b, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
