package decoder

import (
	"encoding/base64"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/models"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestDecodeJSON_Compress(t *testing.T) {
	body := `{
		"operation": "compress",
		"format": "tar.gz",
		"files": [
			{"name": "a.txt", "content": "` + b64("hi") + `"},
			{"name": "dir/b.txt", "content": "` + b64("yo") + `"}
		]
	}`

	params, err := DecodeJSON([]byte(body))
	require.NoError(t, err)

	req, err := ToArchiveRequest(params)
	require.NoError(t, err)

	assert.Equal(t, models.OperationCompress, req.Operation)
	assert.Equal(t, models.FormatTarGz, req.Format)
	assert.Equal(t, "archive.tar.gz", req.ArchiveName)

	want := []models.FileEntry{
		{Name: "a.txt", Data: []byte("hi")},
		{Name: "dir/b.txt", Data: []byte("yo")},
	}
	if diff := cmp.Diff(want, req.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeJSON_Extract(t *testing.T) {
	body := `{"operation":"extract","format":"zip","archive_name":"in.zip","archive_data":"` +
		b64("PK\x03\x04") + `","extract_path":"out/dir"}`

	params, err := DecodeJSON([]byte(body))
	require.NoError(t, err)

	req, err := ToArchiveRequest(params)
	require.NoError(t, err)

	assert.Equal(t, models.OperationExtract, req.Operation)
	assert.Equal(t, "in.zip", req.ArchiveName)
	assert.Equal(t, []byte("PK\x03\x04"), req.ArchiveData)
	assert.Equal(t, "out/dir", req.ExtractPath)
	assert.Empty(t, req.Files)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	for _, body := range []string{`{"operation":`, `[]`, `not json`, ``} {
		_, err := DecodeJSON([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedBody, "body: %q", body)
	}
}

func TestDecodeJSON_MissingFields(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"format":"zip"}`))
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "operation")

	_, err = DecodeJSON([]byte(`{"operation":"compress"}`))
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "format")
}

func TestDecodeJSON_InvalidEncodingNamesFile(t *testing.T) {
	body := `{"operation":"compress","format":"zip","files":[
		{"name":"good.txt","content":"` + b64("ok") + `"},
		{"name":"bad.txt","content":"***"}
	]}`

	params, err := DecodeJSON([]byte(body))
	require.NoError(t, err, "base64 проверяется при конвертации")

	_, err = ToArchiveRequest(params)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestDecodeJSON_InvalidArchiveData(t *testing.T) {
	params, err := DecodeJSON([]byte(`{"operation":"extract","format":"zip","archive_data":"%%%"}`))
	require.NoError(t, err)

	_, err = ToArchiveRequest(params)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Contains(t, err.Error(), "archive_data")
}

func TestDecodeCBOR_ParityWithJSON(t *testing.T) {
	doc := map[string]any{
		"operation":    "compress",
		"format":       "7zip",
		"archive_name": "bundle.7z",
		"files": []map[string]any{
			{"name": "a.txt", "content": []byte("hi")},
			{"name": "dir/b.txt", "content": []byte("yo")},
		},
	}
	body, err := cbor.Marshal(doc)
	require.NoError(t, err)

	cborParams, err := DecodeCBOR(body)
	require.NoError(t, err)
	cborReq, err := ToArchiveRequest(cborParams)
	require.NoError(t, err)

	jsonBody := `{"operation":"compress","format":"7zip","archive_name":"bundle.7z","files":[` +
		`{"name":"a.txt","content":"` + b64("hi") + `"},` +
		`{"name":"dir/b.txt","content":"` + b64("yo") + `"}]}`
	jsonParams, err := DecodeJSON([]byte(jsonBody))
	require.NoError(t, err)
	jsonReq, err := ToArchiveRequest(jsonParams)
	require.NoError(t, err)

	if diff := cmp.Diff(jsonReq, cborReq); diff != "" {
		t.Errorf("CBOR and JSON requests differ (-json +cbor):\n%s", diff)
	}
}

func TestDecodeCBOR_Malformed(t *testing.T) {
	_, err := DecodeCBOR([]byte{0xFF, 0x00})
	assert.ErrorIs(t, err, ErrMalformedBody)

	body, err := cbor.Marshal(map[string]any{"format": "zip"})
	require.NoError(t, err)
	_, err = DecodeCBOR(body)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestDecodeUpload(t *testing.T) {
	data := []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x01}

	params, err := DecodeUpload(data)

	require.NoError(t, err)
	assert.Equal(t, "extract", params.Operation)
	assert.Equal(t, "zip", params.Format)
	assert.Equal(t, data, params.ArchiveData)
}

func TestDecodeUpload_DetectFormats(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04}, "zip"},
		{"gzip", []byte{0x1F, 0x8B, 0x08, 0x00}, "tar.gz"},
		{"bzip2", []byte{0x42, 0x5A, 0x68, 0x39}, "tar.bz2"},
		{"7z", []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, "7z"},
		{"unknown", []byte{0x00, 0x01, 0x02, 0x03}, "zip"},
		{"too small", []byte{0x1F, 0x8B}, "zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := DecodeUpload(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Format)
		})
	}
}

func TestDecodeUpload_Empty(t *testing.T) {
	_, err := DecodeUpload(nil)

	assert.ErrorIs(t, err, ErrNoArchiveData)
}

func TestToArchiveRequest_DefaultName(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		archiveName string
		want        string
	}{
		{"empty name", "tar.bz2", "", "archive.tar.bz2"},
		{"placeholder", "tar.bz2", PlaceholderArchiveName, "archive.tar.bz2"},
		{"alias uses canonical", "tgz", "", "archive.tar.gz"},
		{"explicit", "7z", "mine.7z", "mine.7z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &models.ArchiveRequestParams{
				Operation:   "compress",
				Format:      tt.format,
				ArchiveName: tt.archiveName,
				Files:       []models.FileParam{{Name: "a", Data: []byte("a")}},
			}

			req, err := ToArchiveRequest(params)

			require.NoError(t, err)
			assert.Equal(t, tt.want, req.ArchiveName)
		})
	}
}

func TestToArchiveRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  models.ArchiveRequestParams
		wantErr error
	}{
		{
			name:    "unknown operation",
			params:  models.ArchiveRequestParams{Operation: "delete", Format: "zip"},
			wantErr: ErrInvalidOperation,
		},
		{
			name:    "operation is case sensitive",
			params:  models.ArchiveRequestParams{Operation: "Compress", Format: "zip"},
			wantErr: ErrInvalidOperation,
		},
		{
			name:    "unknown format",
			params:  models.ArchiveRequestParams{Operation: "compress", Format: "rar"},
			wantErr: formats.ErrUnsupportedFormat,
		},
		{
			name:    "compress without files",
			params:  models.ArchiveRequestParams{Operation: "compress", Format: "zip"},
			wantErr: ErrNoFilesSpecified,
		},
		{
			name:    "extract without data",
			params:  models.ArchiveRequestParams{Operation: "extract", Format: "zip"},
			wantErr: ErrNoArchiveData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToArchiveRequest(&tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDetectEncoding(t *testing.T) {
	tests := map[string]Encoding{
		"application/json":                  EncodingJSON,
		"Application/JSON; charset=utf-8":   EncodingJSON,
		"application/cbor":                  EncodingCBOR,
		"multipart/form-data; boundary=abc": EncodingMultipart,
		"application/octet-stream":          EncodingRawUpload,
		"application/x-7z-compressed":       EncodingRawUpload,
		"text/plain":                        EncodingUnknown,
		"":                                  EncodingUnknown,
	}

	for ct, want := range tests {
		assert.Equal(t, want, DetectEncoding(ct), "content type: %q", ct)
	}
	assert.Equal(t, "multipart", EncodingMultipart.String())
}
