package templates

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон расписания не найден
	ErrTemplateNotFound = errors.New("templates.repository: template not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("templates.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("templates.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("templates.repository: failed to scan row")
)
