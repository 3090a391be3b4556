package editor

import "errors"

var (
	// ErrReadOnly возвращается при открытии формы без права редактирования
	ErrReadOnly = errors.New("capacity is read-only for this user")

	// ErrSubmitInProgress возвращается при повторной отправке формы до ответа на первую
	ErrSubmitInProgress = errors.New("a save is already in progress")

	// ErrFormClosed возвращается при работе с закрытой формой
	ErrFormClosed = errors.New("form is closed")
)

// ValidationError ошибка поля формы, обнаруженная до отправки запроса
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SaveError ошибка сохранения на сервере или в сети
// Message готов к показу пользователю
type SaveError struct {
	Message string
	Err     error
}

func (e *SaveError) Error() string {
	return e.Message
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
