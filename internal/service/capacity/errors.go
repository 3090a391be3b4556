package capacity

import "errors"

var (
	// ErrSiteNotFound возвращается, когда площадка не найдена в своей коллекции
	ErrSiteNotFound = errors.New("site not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// ValidationError ошибка валидации конкретного поля
// Message отдаётся клиенту как есть
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
