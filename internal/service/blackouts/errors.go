package blackouts

import "errors"

var (
	// ErrInvalidWeekday возвращается при недопустимом дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blackouts service: internal error")
)
