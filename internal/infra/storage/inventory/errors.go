package inventory

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись календаря не найдена
	ErrEntryNotFound = errors.New("inventory.repository: entry not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("inventory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("inventory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("inventory.repository: failed to scan row")
)
