package decoder

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/hodzhakhov/archiver/models"
)

// decMode принимает стандартный CBOR, неизвестные поля игнорируются,
// повторяющиеся ключи отклоняются.
var decMode cbor.DecMode

func init() {
	var err error

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("decoder: не удалось инициализировать CBOR декодер: " + err.Error())
	}
}

type cborFile struct {
	Name    string `cbor:"name"`
	Content []byte `cbor:"content"`
}

type cborRequest struct {
	Operation   *string    `cbor:"operation"`
	Format      *string    `cbor:"format"`
	ArchiveName string     `cbor:"archive_name"`
	Files       []cborFile `cbor:"files"`
	ArchiveData []byte     `cbor:"archive_data"`
	ExtractPath string     `cbor:"extract_path"`
}

// DecodeCBOR разбирает тот же документ, что и DecodeJSON, но двоичные данные
// передаются байтовыми строками CBOR без base64.
func DecodeCBOR(body []byte) (*models.ArchiveRequestParams, error) {
	var req cborRequest
	if err := decMode.Unmarshal(body, &req); err != nil {
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
		ArchiveData: req.ArchiveData,
	}

	for _, f := range req.Files {
		params.Files = append(params.Files, models.FileParam{
			Name: f.Name,
			Data: f.Content,
		})
	}

	return params, nil
}
