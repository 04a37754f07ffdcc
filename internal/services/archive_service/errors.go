package archive_service

import "errors"

var (
	ErrContextDone = errors.New("отмена контекста")

	ErrNoFiles          = errors.New("не переданы файлы для сжатия")
	ErrNoArchiveData    = errors.New("не переданы данные архива для распаковки")
	ErrUnknownOperation = errors.New("неизвестная операция с архивом")

	ErrCorruptArchive   = errors.New("архив повреждён")
	ErrWriteFailure     = errors.New("не удалось создать архив")
	ErrIOStagingFailure = errors.New("ошибка работы с файловой системой")

	ErrNothingToSave    = errors.New("нет распакованных файлов для сохранения")
	ErrUnsafeFilePath   = errors.New("недопустимый путь файла")
	ErrMkdirFailed      = errors.New("не удалось создать директорию")
	ErrFileCreateFailed = errors.New("не удалось создать файл")
)
