package encoder

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hodzhakhov/archiver/models"
)

const boundaryPrefix = "----CustomBoundary"

// NewBoundary возвращает boundary вида ----CustomBoundary + 16 hex-символов.
func NewBoundary() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return boundaryPrefix + id[:16]
}

// WriteMultipart кодирует файлы в тело multipart/form-data, по одной секции
// на файл.
func WriteMultipart(w http.ResponseWriter, files []models.FileEntry, boundary string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.SetBoundary(boundary); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoundary, err)
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filenameReplacer.Replace(f.Name)))
		header.Set("Content-Type", contentTypeBinary)

		part, err := mw.CreatePart(header)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteResponse, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteResponse, err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteResponse, err)
	}

	w.Header().Set("Content-Type", "multipart/form-data; boundary="+boundary)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteResponse, err)
	}
	return nil
}
