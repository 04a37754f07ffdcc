package models

type ArchiveFormat int

const (
	FormatZIP ArchiveFormat = iota
	FormatTarGz
	FormatTarBz2
	FormatSevenZ
)

type ArchiveOperation string

const (
	OperationCompress ArchiveOperation = "compress"
	OperationExtract  ArchiveOperation = "extract"
)

// FileEntry — один файл внутри архива или для архива. Name может содержать
// относительный путь через "/".
type FileEntry struct {
	Name string
	Data []byte
}

// ArchiveRequest — провалидированный запрос. Для compress заполнено Files,
// для extract — ArchiveData.
type ArchiveRequest struct {
	Operation   ArchiveOperation
	Format      ArchiveFormat
	ArchiveName string
	Files       []FileEntry
	ArchiveData []byte
	ExtractPath string
}

type ArchiveResult struct {
	Operation       ArchiveOperation
	Format          ArchiveFormat
	ArchiveName     string
	InputFilesCount int
	InputSize       int64
	ArchiveData     []byte
	ExtractedFiles  []FileEntry
}

func (r *ArchiveResult) OutputSize() int64 {
	if r.Operation == OperationCompress {
		return int64(len(r.ArchiveData))
	}

	return TotalSize(r.ExtractedFiles)
}

func (r *ArchiveResult) CompressionRatio() float64 {
	if r.InputSize == 0 {
		return 0
	}

	return (1 - float64(r.OutputSize())/float64(r.InputSize)) * 100
}

func TotalSize(files []FileEntry) int64 {
	var total int64
	for _, f := range files {
		total += int64(len(f.Data))
	}
	return total
}
