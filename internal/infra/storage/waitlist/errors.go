package waitlist

import "errors"

var (
	// ErrEntryNotFound запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
