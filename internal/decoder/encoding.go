package decoder

import (
	"mime"
	"strings"
)

// Encoding — способ, которым клиент передал запрос.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingJSON
	EncodingCBOR
	EncodingMultipart
	EncodingRawUpload
)

func (e Encoding) String() string {
	switch e {
	case EncodingJSON:
		return "json"
	case EncodingCBOR:
		return "cbor"
	case EncodingMultipart:
		return "multipart"
	case EncodingRawUpload:
		return "raw"
	default:
		return "unknown"
	}
}

var rawUploadTypes = map[string]bool{
	"application/octet-stream":    true,
	"application/zip":             true,
	"application/gzip":            true,
	"application/x-gzip":          true,
	"application/x-bzip2":         true,
	"application/x-7z-compressed": true,
}

// DetectEncoding определяет кодировку тела по заголовку Content-Type.
func DetectEncoding(contentType string) Encoding {
	mediaType := mediaTypeOf(contentType)

	switch {
	case mediaType == "application/json":
		return EncodingJSON
	case mediaType == "application/cbor":
		return EncodingCBOR
	case mediaType == "multipart/form-data":
		return EncodingMultipart
	case rawUploadTypes[mediaType]:
		return EncodingRawUpload
	default:
		return EncodingUnknown
	}
}

func mediaTypeOf(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
}
