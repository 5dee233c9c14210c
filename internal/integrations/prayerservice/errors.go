package prayerservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("prayerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("prayerservice client: invalid response")

	// ErrUnavailable возвращается, когда сервис расписаний недоступен
	// Вызывающая сторона обязана продолжить работу без блокировки слотов
	ErrUnavailable = errors.New("prayerservice client: service unavailable")
)
