package prayercache

import "errors"

var (
	// ErrDayNotFound расписание на дату отсутствует в кэше
	ErrDayNotFound = errors.New("prayercache.repository: day not found")
	// ErrBuildQuery ошибка построения SQL запроса
	ErrBuildQuery = errors.New("prayercache.repository: failed to build query")
	// ErrExecQuery ошибка выполнения SQL запроса
	ErrExecQuery = errors.New("prayercache.repository: failed to execute query")
	// ErrScanRow ошибка сканирования строки результата
	ErrScanRow = errors.New("prayercache.repository: failed to scan row")
)
