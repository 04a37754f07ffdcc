package api

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hodzhakhov/archiver/internal/config"
	"github.com/hodzhakhov/archiver/internal/decoder"
	"github.com/hodzhakhov/archiver/internal/encoder"
	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/internal/interfaces/services"
	"github.com/hodzhakhov/archiver/models"
)

type ArchiveAPI struct {
	service services.ArchiveService
	logger  *zap.Logger
	cfg     *config.Config
}

func New(service services.ArchiveService, logger *zap.Logger, cfg *config.Config) *ArchiveAPI {
	return &ArchiveAPI{
		service: service,
		logger:  logger,
		cfg:     cfg,
	}
}

// POST /archive
// Тело в JSON (base64) или CBOR. compress отдаёт архив, либо статус при
// ?response=status; extract отдаёт статус без содержимого файлов.
func (h *ArchiveAPI) Archive(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var (
		params *models.ArchiveRequestParams
		err    error
	)
	switch decoder.DetectEncoding(r.Header.Get("Content-Type")) {
	case decoder.EncodingJSON:
		params, err = decoder.DecodeJSON(body)
	case decoder.EncodingCBOR:
		params, err = decoder.DecodeCBOR(body)
	default:
		h.writeError(w, http.StatusBadRequest, "Content-Type должен быть application/json или application/cbor")
		return
	}
	if err != nil {
		h.fail(w, "ошибка разбора запроса", err)
		return
	}

	result, ok := h.process(w, r, params)
	if !ok {
		return
	}

	if result.Operation == models.OperationCompress && r.URL.Query().Get("response") != "status" {
		h.respond(encoder.WriteArchive(w, result))
		return
	}
	h.respond(encoder.WriteStatus(w, result))
}

// POST /archive/compress
// Тело multipart/form-data. compress отдаёт архив, extract — файлы в multipart.
func (h *ArchiveAPI) Compress(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if decoder.DetectEncoding(contentType) != decoder.EncodingMultipart {
		h.writeError(w, http.StatusBadRequest, "Content-Type должен быть multipart/form-data")
		return
	}

	boundary, err := decoder.ParseBoundary(contentType)
	if err != nil {
		h.fail(w, "ошибка разбора Content-Type", err)
		return
	}

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	params, err := decoder.DecodeMultipart(body, boundary)
	if err != nil {
		h.fail(w, "ошибка разбора multipart запроса", err)
		return
	}
	// Ответ этого эндпоинта кэшируется, поэтому запись на диск здесь
	// не выполняется: файлы и так возвращаются в теле ответа.
	params.ExtractPath = ""

	result, ok := h.process(w, r, params)
	if !ok {
		return
	}

	if result.Operation == models.OperationExtract {
		h.respond(encoder.WriteMultipart(w, result.ExtractedFiles, encoder.NewBoundary()))
		return
	}
	h.respond(encoder.WriteArchive(w, result))
}

// POST /archive/extract
// Тело — сам архив, формат определяется по сигнатуре. Content-Type не
// обязателен и на разбор не влияет.
func (h *ArchiveAPI) Extract(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" && decoder.DetectEncoding(ct) != decoder.EncodingRawUpload {
		h.logger.Warn("неожиданный Content-Type, тело обрабатывается как архив",
			zap.String("content_type", ct),
		)
	}

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	params, err := decoder.DecodeUpload(body)
	if err != nil {
		h.fail(w, "ошибка разбора архива", err)
		return
	}

	result, ok := h.process(w, r, params)
	if !ok {
		return
	}

	h.respond(encoder.WriteMultipart(w, result.ExtractedFiles, encoder.NewBoundary()))
}

// GET /formats
func (h *ArchiveAPI) Formats(w http.ResponseWriter, r *http.Request) {
	h.respond(encoder.WriteFormats(w, formats.ListSupported()))
}

func (h *ArchiveAPI) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("запрос к неизвестному эндпоинту",
		zap.String("method", r.Method),
		zap.String("url", r.URL.Path),
	)
	h.respond(encoder.WriteNotFound(w))
}

func (h *ArchiveAPI) process(w http.ResponseWriter, r *http.Request, params *models.ArchiveRequestParams) (*models.ArchiveResult, bool) {
	req, err := decoder.ToArchiveRequest(params)
	if err != nil {
		h.fail(w, "некорректный запрос", err)
		return nil, false
	}

	result, err := h.service.Process(r.Context(), req)
	if err != nil {
		h.fail(w, "ошибка обработки архива", err)
		return nil, false
	}

	return result, true
}

func (h *ArchiveAPI) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.fail(w, "ошибка чтения тела запроса", err)
		return nil, false
	}
	return body, true
}

func (h *ArchiveAPI) fail(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Warn(msg, zap.Error(err))
	}
	h.writeError(w, status, err.Error())
}

func (h *ArchiveAPI) writeError(w http.ResponseWriter, status int, msg string) {
	h.respond(encoder.WriteError(w, status, msg))
}

func (h *ArchiveAPI) respond(err error) {
	if err != nil {
		h.logger.Error("ошибка отправки ответа", zap.Error(err))
	}
}
