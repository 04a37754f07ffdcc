package decoder

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/hodzhakhov/archiver/models"
)

const (
	headerTerminator = "\r\n\r\n"
	lineBreak        = "\r\n"

	fieldOperation   = "operation"
	fieldFormat      = "format"
	fieldArchiveName = "archive_name"
	fieldExtractPath = "extract_path"
	fieldArchiveData = "archive_data"

	unknownFilename = "unknown"
)

type formPart struct {
	filename string
	data     []byte
}

type formData struct {
	fields map[string][]byte
	files  []formPart
}

// ParseBoundary достаёт параметр boundary из Content-Type.
func ParseBoundary(contentType string) (string, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err == nil {
		if b := params["boundary"]; b != "" {
			return b, nil
		}
		return "", ErrMissingBoundary
	}

	idx := strings.Index(contentType, "boundary=")
	if idx < 0 {
		return "", ErrMissingBoundary
	}

	b := contentType[idx+len("boundary="):]
	if i := strings.IndexByte(b, ';'); i >= 0 {
		b = b[:i]
	}
	b = strings.Trim(strings.TrimSpace(b), `"`)
	if b == "" {
		return "", ErrMissingBoundary
	}
	return b, nil
}

// DecodeMultipart разбирает тело multipart/form-data. Секции без заголовков,
// без Content-Disposition или без имени пропускаются.
func DecodeMultipart(body []byte, boundary string) (*models.ArchiveRequestParams, error) {
	if boundary == "" {
		return nil, ErrMissingBoundary
	}

	form := parseForm(body, boundary)

	operation, ok := form.fields[fieldOperation]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, fieldOperation)
	}
	format, ok := form.fields[fieldFormat]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, fieldFormat)
	}

	params := &models.ArchiveRequestParams{
		Operation:   string(operation),
		Format:      string(format),
		ArchiveName: string(form.fields[fieldArchiveName]),
		ExtractPath: string(form.fields[fieldExtractPath]),
	}

	switch params.Operation {
	case string(models.OperationCompress):
		for _, f := range form.files {
			params.Files = append(params.Files, models.FileParam{
				Name: f.filename,
				Data: f.data,
			})
		}
	case string(models.OperationExtract):
		params.ArchiveData = form.fields[fieldArchiveData]
	}

	return params, nil
}

func parseForm(body []byte, boundary string) formData {
	form := formData{fields: make(map[string][]byte)}
	delimiter := []byte("--" + boundary)

	for _, part := range bytes.Split(body, delimiter) {
		if len(part) == 0 || string(part) == "--\r\n" || string(part) == "--" {
			continue
		}

		headerEnd := bytes.Index(part, []byte(headerTerminator))
		if headerEnd < 0 {
			continue
		}

		headers := parsePartHeaders(string(part[:headerEnd]))
		content := part[headerEnd+len(headerTerminator):]
		content = bytes.TrimSuffix(content, []byte(lineBreak))

		disposition, ok := headers["content-disposition"]
		if !ok || !strings.Contains(disposition, "form-data") {
			continue
		}

		if strings.Contains(disposition, `filename="`) {
			form.files = append(form.files, formPart{
				filename: quotedParam(disposition, `filename="`, unknownFilename),
				data:     content,
			})
			continue
		}

		if name := quotedParam(disposition, `name="`, ""); name != "" {
			form.fields[name] = content
		}
	}

	return form
}

func parsePartHeaders(block string) map[string]string {
	headers := make(map[string]string)

	for _, line := range strings.Split(block, "\n") {
		line = strings.Trim(line, " \t\r\n")
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	return headers
}

// quotedParam возвращает значение между token и следующей кавычкой как есть,
// без обработки экранирования.
func quotedParam(disposition, token, fallback string) string {
	start := strings.Index(disposition, token)
	if start < 0 {
		return fallback
	}
	start += len(token)

	end := strings.IndexByte(disposition[start:], '"')
	if end < 0 {
		return fallback
	}
	return disposition[start : start+end]
}
