package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается при дате за горизонтом записи
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrDateUnavailable возвращается, когда дата закрыта для записи
	ErrDateUnavailable = errors.New("create_booking: date is not available for booking")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotBlocked возвращается, когда слот закрыт интервалом молитвы
	ErrSlotBlocked = errors.New("create_booking: slot is blocked by prayer time")

	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("create_booking: therapist not found")

	// ErrTherapistInactive возвращается, когда терапевт не принимает записи
	ErrTherapistInactive = errors.New("create_booking: therapist is not accepting bookings")

	// ErrSlotNotAvailable возвращается, когда терапевт занят в выбранном интервале
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
