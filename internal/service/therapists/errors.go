package therapists

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrHasActiveBookings возвращается при удалении терапевта с подтвержденными сеансами
	ErrHasActiveBookings = errors.New("therapist has active bookings")

	// ErrInvalidWindow возвращается при некорректном окне неактивности
	ErrInvalidWindow = errors.New("invalid inactivity window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("therapists service: internal error")
)
