package decoder

import (
	"encoding/json"
	"fmt"

	"github.com/hodzhakhov/archiver/models"
)

type jsonFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type jsonRequest struct {
	Operation   *string    `json:"operation"`
	Format      *string    `json:"format"`
	ArchiveName string     `json:"archive_name"`
	Files       []jsonFile `json:"files"`
	ArchiveData string     `json:"archive_data"`
	ExtractPath string     `json:"extract_path"`
}

// DecodeJSON разбирает JSON-документ запроса. Содержимое файлов остаётся в
// base64 и декодируется в ToArchiveRequest.
func DecodeJSON(body []byte) (*models.ArchiveRequestParams, error) {
	var req jsonRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if req.Operation == nil {
		return nil, fmt.Errorf("%w: operation", ErrMissingField)
	}
	if req.Format == nil {
		return nil, fmt.Errorf("%w: format", ErrMissingField)
	}

	params := &models.ArchiveRequestParams{
		Operation:   *req.Operation,
		Format:      *req.Format,
		ArchiveName: req.ArchiveName,
		ExtractPath: req.ExtractPath,
	}

	for _, f := range req.Files {
		params.Files = append(params.Files, models.FileParam{
			Name:      f.Name,
			Encoded:   f.Content,
			IsEncoded: true,
		})
	}

	if req.ArchiveData != "" {
		params.EncodedArchiveData = req.ArchiveData
		params.ArchiveDataEncoded = true
	}

	return params, nil
}
