package blackout

import "errors"

var (
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("blackout.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("blackout.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("blackout.repository: failed to scan row")
)
