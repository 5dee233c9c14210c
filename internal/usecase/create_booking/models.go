package create_booking

import (
	"time"

	"github.com/bekamcare/BKM-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID         int64            // ID пользователя
	TherapistID    int64            // ID терапевта
	Date           time.Time        // Дата сеанса (без времени)
	StartTime      types.TimeString // Время начала слота (например, "10:20")
	PatientName    string           // Имя пациента
	PatientGender  string           // Пол пациента
	PatientAddress string           // Адрес выезда
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	TherapistID     int64
	TherapistName   string
	StartAt         time.Time
	DurationMinutes int
	Status          string
	PatientName     string
	PatientGender   string
	PatientAddress  string
	ReminderJobID   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
