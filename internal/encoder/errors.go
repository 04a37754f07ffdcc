package encoder

import "errors"

var (
	ErrEncodeJSON      = errors.New("ошибка кодирования JSON ответа")
	ErrWriteResponse   = errors.New("ошибка записи ответа")
	ErrInvalidBoundary = errors.New("некорректный boundary")
)
