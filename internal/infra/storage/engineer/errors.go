package engineer

import "errors"

var (
	// ErrEngineerNotFound возвращается, когда инженер не найден
	ErrEngineerNotFound = errors.New("engineer.repository: engineer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("engineer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("engineer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("engineer.repository: failed to scan row")
)
