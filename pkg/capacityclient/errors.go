package capacityclient

import (
	"errors"
	"fmt"
)

// ErrUnavailable возвращается, когда сервис недоступен (сетевая ошибка, таймаут)
var ErrUnavailable = errors.New("capacity service unavailable")

// APIError ответ сервиса со статусом ошибки
// Message содержит поле error из тела ответа, может быть пустым
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("capacity service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("capacity service returned status %d: %s", e.StatusCode, e.Message)
}
