package notifyservice

import "time"

// ReminderNotification модель напоминания о предстоящем сеансе
type ReminderNotification struct {
	UserID        int64     `json:"user_id"`
	BookingID     int64     `json:"booking_id"`
	TherapistName string    `json:"therapist_name"`
	StartAt       time.Time `json:"start_at"`
}
