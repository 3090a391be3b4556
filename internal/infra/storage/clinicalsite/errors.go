package clinicalsite

import "errors"

var (
	// ErrClinicalSiteNotFound возвращается, когда клиническая площадка не найдена
	ErrClinicalSiteNotFound = errors.New("clinicalsite.repository: clinical site not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("clinicalsite.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("clinicalsite.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("clinicalsite.repository: failed to scan row")
)
