package inmem

import "errors"

var (
	ErrResponseNil    = errors.New("ответ не может быть nil")
	ErrKeyEmpty       = errors.New("ключ кэша не может быть пустым")
	ErrContextDone    = errors.New("отмена контекста")
	ErrCorruptedBody  = errors.New("не удалось распаковать тело ответа из кэша")
	errIncompressible = errors.New("данные не сжимаются")
)
