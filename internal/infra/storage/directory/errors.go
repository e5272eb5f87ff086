package directory

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("directory.repository: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("directory.repository: service not found")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("directory.repository: client not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("directory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("directory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("directory.repository: failed to scan row")
)
