package encoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/models"
)

const (
	HeaderArchiveDigest = "X-Archive-Digest"

	contentTypeJSON   = "application/json"
	contentTypeBinary = "application/octet-stream"
)

var endpoints = []string{
	"POST /archive",
	"POST /archive/compress",
	"POST /archive/extract",
	"GET /formats",
}

var filenameReplacer = strings.NewReplacer(`"`, "_", "\r", "_", "\n", "_")

type errorResp struct {
	Error string `json:"error"`
}

type formatsResp struct {
	SupportedFormats []string `json:"supported_formats"`
}

// WriteArchive отдаёт готовый архив как вложение с дайджестом содержимого.
func WriteArchive(w http.ResponseWriter, result *models.ArchiveResult) error {
	h := w.Header()
	h.Set("Content-Type", contentTypeBinary)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filenameReplacer.Replace(result.ArchiveName)))
	h.Set("Content-Length", strconv.Itoa(len(result.ArchiveData)))
	h.Set(HeaderArchiveDigest, digest.FromBytes(result.ArchiveData).String())

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.ArchiveData); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteResponse, err)
	}
	return nil
}

func WriteError(w http.ResponseWriter, status int, msg string) error {
	return writeJSON(w, status, errorResp{Error: msg})
}

func WriteFormats(w http.ResponseWriter, supported []string) error {
	return writeJSON(w, http.StatusOK, formatsResp{SupportedFormats: supported})
}

func WriteNotFound(w http.ResponseWriter) error {
	msg := "Endpoint not found. Available endpoints: " + strings.Join(endpoints, ", ")
	return WriteError(w, http.StatusNotFound, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeJSON, err)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteResponse, err)
	}
	return nil
}

func formatName(f models.ArchiveFormat) string {
	return formats.CanonicalName(f)
}
