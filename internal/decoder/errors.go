package decoder

import "errors"

var (
	ErrMalformedBody    = errors.New("некорректное тело запроса")
	ErrMissingField     = errors.New("отсутствует обязательное поле")
	ErrInvalidOperation = errors.New("операция должна быть 'compress' или 'extract'")
	ErrNoFilesSpecified = errors.New("не указаны файлы для сжатия")
	ErrNoArchiveData    = errors.New("не переданы данные архива для распаковки")
	ErrInvalidEncoding  = errors.New("некорректная кодировка base64")
	ErrMissingBoundary  = errors.New("в Content-Type отсутствует boundary")
)
