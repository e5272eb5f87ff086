package scheduleconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация расписания не найдена
	ErrConfigNotFound = errors.New("scheduleconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("scheduleconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("scheduleconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("scheduleconfig.repository: failed to scan row")
)
