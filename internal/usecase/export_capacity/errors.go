package export_capacity

import "errors"

var (
	// ErrUnsupportedFormat возвращается при неизвестном формате выгрузки
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
