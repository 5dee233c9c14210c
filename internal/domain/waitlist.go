package domain

import "time"

// WaitlistEntry заявка в листе ожидания
// Создается пользователем, удаляется администратором при ручном разборе
type WaitlistEntry struct {
	ID     int64
	ChatID int64
	Name   string
	Phone  *string
	Gender string

	// Желаемая дата (nil - любая)
	RequestedDate *time.Time

	CreatedAt time.Time
}
