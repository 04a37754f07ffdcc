package decoder

import (
	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/models"
)

// DecodeUpload трактует тело как архив для распаковки. Формат определяется
// по сигнатуре, слишком короткие данные считаются zip.
func DecodeUpload(body []byte) (*models.ArchiveRequestParams, error) {
	if len(body) == 0 {
		return nil, ErrNoArchiveData
	}

	// ErrDataTooSmall наружу не отдаётся: короткое тело уходит в zip-кодек
	// и отклоняется там как повреждённый архив.
	format, err := formats.Sniff(body)
	if err != nil {
		format = models.FormatZIP
	}

	return &models.ArchiveRequestParams{
		Operation:   string(models.OperationExtract),
		Format:      formats.CanonicalName(format),
		ArchiveData: body,
	}, nil
}
