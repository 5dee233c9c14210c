package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed therapy session in the ledger
type Booking struct {
	ID              int64
	UserID          int64
	PatientName     string
	PatientGender   string
	PatientAddress  string
	TherapistID     int64
	StartAt         time.Time
	DurationMinutes int
	Status          BookingStatus

	// Ключ зарегистрированного напоминания (nil - напоминание не создано)
	ReminderJobID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Денормализованное имя терапевта для выдачи наружу
	TherapistName string
}

// EndAt returns the half-open end of the session interval
func (b *Booking) EndAt() time.Time {
	return b.StartAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsConfirmed returns true if the booking still occupies its slot
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// OverlapsInterval reports whether the booking intersects [start, end)
func (b *Booking) OverlapsInterval(start, end time.Time) bool {
	return Overlaps(b.StartAt, b.EndAt(), start, end)
}

// BookingsFilter фильтр для административной выборки бронирований
type BookingsFilter struct {
	TherapistID *int64
	Status      *BookingStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Limit       int
	Offset      int
}

// ToBookingStatus валидирует строку статуса
func ToBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}
