package formats

import "errors"

var (
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат архива")
	ErrDataTooSmall      = errors.New("слишком мало данных для определения формата")
)
