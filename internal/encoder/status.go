package encoder

import (
	"net/http"

	"github.com/hodzhakhov/archiver/models"
)

type compressStatus struct {
	Operation        string  `json:"operation"`
	Format           string  `json:"format"`
	ArchiveName      string  `json:"archive_name"`
	InputFilesCount  int     `json:"input_files_count"`
	ArchiveSize      int64   `json:"archive_size"`
	CompressionRatio float64 `json:"compression_ratio"`
	Success          bool    `json:"success"`
}

type extractedFile struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type extractStatus struct {
	Operation           string          `json:"operation"`
	Format              string          `json:"format"`
	ArchiveName         string          `json:"archive_name"`
	ExtractedFilesCount int             `json:"extracted_files_count"`
	TotalExtractedSize  int64           `json:"total_extracted_size"`
	Files               []extractedFile `json:"files"`
	Success             bool            `json:"success"`
}

// StatusDocument описывает результат операции без содержимого файлов.
func StatusDocument(result *models.ArchiveResult) any {
	if result.Operation == models.OperationCompress {
		return compressStatus{
			Operation:        string(result.Operation),
			Format:           formatName(result.Format),
			ArchiveName:      result.ArchiveName,
			InputFilesCount:  result.InputFilesCount,
			ArchiveSize:      result.OutputSize(),
			CompressionRatio: result.CompressionRatio(),
			Success:          true,
		}
	}

	files := make([]extractedFile, 0, len(result.ExtractedFiles))
	for _, f := range result.ExtractedFiles {
		files = append(files, extractedFile{Name: f.Name, Size: len(f.Data)})
	}

	return extractStatus{
		Operation:           string(result.Operation),
		Format:              formatName(result.Format),
		ArchiveName:         result.ArchiveName,
		ExtractedFilesCount: len(result.ExtractedFiles),
		TotalExtractedSize:  result.OutputSize(),
		Files:               files,
		Success:             true,
	}
}

func WriteStatus(w http.ResponseWriter, result *models.ArchiveResult) error {
	return writeJSON(w, http.StatusOK, StatusDocument(result))
}
