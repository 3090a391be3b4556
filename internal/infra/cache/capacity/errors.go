package capacity

import "errors"

var (
	// ErrCacheMiss возвращается, когда значение отсутствует в кэше
	ErrCacheMiss = errors.New("capacity.cache: cache miss")

	// ErrCodec возвращается при ошибке сериализации значения
	ErrCodec = errors.New("capacity.cache: codec error")

	// ErrStorage возвращается при ошибке обращения к хранилищу
	ErrStorage = errors.New("capacity.cache: storage error")
)
