package api

import (
	"errors"
	"net/http"

	"github.com/hodzhakhov/archiver/internal/decoder"
	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/internal/services/archive_service"
)

var clientErrors = []error{
	decoder.ErrMalformedBody,
	decoder.ErrMissingField,
	decoder.ErrInvalidOperation,
	decoder.ErrNoFilesSpecified,
	decoder.ErrNoArchiveData,
	decoder.ErrInvalidEncoding,
	decoder.ErrMissingBoundary,
	formats.ErrUnsupportedFormat,
	formats.ErrDataTooSmall,
	archive_service.ErrNoFiles,
	archive_service.ErrNoArchiveData,
	archive_service.ErrUnknownOperation,
	archive_service.ErrUnsafeFilePath,
}

// statusFor: ошибки разбора и валидации (включая недопустимые пути) — 400,
// всё остальное — 500.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}

	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}
