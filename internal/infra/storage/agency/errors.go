package agency

import "errors"

var (
	// ErrAgencyNotFound возвращается, когда агентство не найдено
	ErrAgencyNotFound = errors.New("agency.repository: agency not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("agency.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("agency.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("agency.repository: failed to scan row")
)
