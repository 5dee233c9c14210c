package prayertimes

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("prayertimes service: internal error")
)
