package availability

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrTherapistInactive возвращается, когда терапевт не принимает записи
	ErrTherapistInactive = errors.New("therapist is not accepting bookings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability service: internal error")
)
