package therapist

import "errors"

var (
	// ErrTherapistNotFound терапевт не найден
	ErrTherapistNotFound = errors.New("therapist.repository: therapist not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("therapist.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("therapist.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("therapist.repository: failed to scan row")
)
