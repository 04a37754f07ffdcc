package models

// ArchiveRequestParams — сырые поля запроса до валидации. Создаётся
// декодером и один раз превращается в ArchiveRequest.
type ArchiveRequestParams struct {
	Operation   string
	Format      string
	ArchiveName string
	ExtractPath string

	Files []FileParam

	ArchiveData        []byte
	EncodedArchiveData string
	ArchiveDataEncoded bool
}

// FileParam хранит содержимое либо как байты, либо как base64-текст,
// который декодируется только при конвертации.
type FileParam struct {
	Name      string
	Data      []byte
	Encoded   string
	IsEncoded bool
}
