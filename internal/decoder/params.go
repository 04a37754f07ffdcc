package decoder

import (
	"encoding/base64"
	"fmt"

	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/models"
)

// PlaceholderArchiveName — имя, которое клиенты подставляют по умолчанию.
// Оно заменяется на имя с расширением выбранного формата.
const PlaceholderArchiveName = "archive.zip"

// ToArchiveRequest проверяет параметры и собирает из них ArchiveRequest.
// Общая проверка для всех кодировок.
func ToArchiveRequest(params *models.ArchiveRequestParams) (*models.ArchiveRequest, error) {
	var op models.ArchiveOperation
	switch params.Operation {
	case string(models.OperationCompress):
		op = models.OperationCompress
	case string(models.OperationExtract):
		op = models.OperationExtract
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, params.Operation)
	}

	format, err := formats.Resolve(params.Format)
	if err != nil {
		return nil, err
	}

	req := &models.ArchiveRequest{
		Operation:   op,
		Format:      format,
		ArchiveName: params.ArchiveName,
	}

	if req.ArchiveName == "" || req.ArchiveName == PlaceholderArchiveName {
		req.ArchiveName = "archive." + formats.CanonicalName(format)
	}

	if op == models.OperationCompress {
		if len(params.Files) == 0 {
			return nil, ErrNoFilesSpecified
		}

		req.Files = make([]models.FileEntry, 0, len(params.Files))
		for _, f := range params.Files {
			data := f.Data
			if f.IsEncoded {
				data, err = base64.StdEncoding.DecodeString(f.Encoded)
				if err != nil {
					return nil, fmt.Errorf("%w: файл %q: %v", ErrInvalidEncoding, f.Name, err)
				}
			}
			req.Files = append(req.Files, models.FileEntry{Name: f.Name, Data: data})
		}
		return req, nil
	}

	data := params.ArchiveData
	if params.ArchiveDataEncoded {
		data, err = base64.StdEncoding.DecodeString(params.EncodedArchiveData)
		if err != nil {
			return nil, fmt.Errorf("%w: archive_data: %v", ErrInvalidEncoding, err)
		}
	}
	if len(data) == 0 {
		return nil, ErrNoArchiveData
	}

	req.ArchiveData = data
	req.ExtractPath = params.ExtractPath
	return req, nil
}
