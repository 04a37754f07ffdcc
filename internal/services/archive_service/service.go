package archive_service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/hodzhakhov/archiver/internal/config"
	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/internal/infra/codec"
	"github.com/hodzhakhov/archiver/internal/interfaces/infra"
	"github.com/hodzhakhov/archiver/internal/interfaces/services"
	"github.com/hodzhakhov/archiver/models"
)

var _ services.ArchiveService = (*archiveService)(nil)

type archiveService struct {
	codecs infra.CodecProvider
	logger *zap.Logger
	cfg    *config.Config
}

func New(log *zap.Logger, cfg *config.Config, codecs infra.CodecProvider) services.ArchiveService {
	return &archiveService{
		logger: log,
		cfg:    cfg,
		codecs: codecs,
	}
}

func (s *archiveService) Compress(ctx context.Context, format models.ArchiveFormat, files []models.FileEntry) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	c, err := s.codecs.Codec(format)
	if err != nil {
		return nil, err
	}

	inputSize := models.TotalSize(files)
	s.logger.Info("сжатие файлов",
		zap.String("format", formats.CanonicalName(format)),
		zap.Int("files", len(files)),
		zap.String("input_size", humanize.Bytes(uint64(inputSize))),
	)

	data, err := c.Pack(files)
	if err != nil {
		s.logger.Error("ошибка при создании архива",
			zap.String("format", formats.CanonicalName(format)),
			zap.Error(err),
		)
		return nil, wrapCodecErr(err)
	}

	s.logger.Info("архив создан",
		zap.String("format", formats.CanonicalName(format)),
		zap.String("content_type", formats.ContentType(format)),
		zap.String("archive_size", humanize.Bytes(uint64(len(data)))),
	)
	return data, nil
}

func (s *archiveService) Extract(ctx context.Context, format models.ArchiveFormat, data []byte) ([]models.FileEntry, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if len(data) == 0 {
		return nil, ErrNoArchiveData
	}

	c, err := s.codecs.Codec(format)
	if err != nil {
		return nil, err
	}

	s.logger.Info("распаковка архива",
		zap.String("format", formats.CanonicalName(format)),
		zap.String("content_type", formats.ContentType(format)),
		zap.String("archive_size", humanize.Bytes(uint64(len(data)))),
	)

	files, err := c.Unpack(data)
	if err != nil {
		s.logger.Error("ошибка при распаковке архива",
			zap.String("format", formats.CanonicalName(format)),
			zap.Error(err),
		)
		return nil, wrapCodecErr(err)
	}

	s.logger.Info("архив распакован",
		zap.String("format", formats.CanonicalName(format)),
		zap.Int("files", len(files)),
		zap.String("total_size", humanize.Bytes(uint64(models.TotalSize(files)))),
	)
	return files, nil
}

func (s *archiveService) Process(ctx context.Context, req *models.ArchiveRequest) (*models.ArchiveResult, error) {
	result := &models.ArchiveResult{
		Operation:   req.Operation,
		Format:      req.Format,
		ArchiveName: req.ArchiveName,
	}

	switch req.Operation {
	case models.OperationCompress:
		data, err := s.Compress(ctx, req.Format, req.Files)
		if err != nil {
			return nil, err
		}
		result.InputFilesCount = len(req.Files)
		result.InputSize = models.TotalSize(req.Files)
		result.ArchiveData = data

	case models.OperationExtract:
		files, err := s.Extract(ctx, req.Format, req.ArchiveData)
		if err != nil {
			return nil, err
		}
		result.InputSize = int64(len(req.ArchiveData))
		result.ExtractedFiles = files

		if req.ExtractPath != "" && len(files) > 0 {
			if err := s.SaveExtracted(ctx, req.ExtractPath, files); err != nil {
				return nil, err
			}
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Operation)
	}

	return result, nil
}

// SaveExtracted сохраняет файлы в dir относительно ExtractRoot. Пути,
// выходящие за пределы каталога, отклоняются до записи первого файла.
func (s *archiveService) SaveExtracted(ctx context.Context, dir string, files []models.FileEntry) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if len(files) == 0 {
		return ErrNothingToSave
	}

	base, err := s.resolveDir(dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return fmt.Errorf("%w: %w: %q", ErrIOStagingFailure, ErrUnsafeFilePath, f.Name)
		}
	}

	for _, f := range files {
		fullPath := filepath.Join(base, filepath.FromSlash(f.Name))

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return fmt.Errorf("%w: %w: %v", ErrIOStagingFailure, ErrMkdirFailed, err)
		}
		if err := os.WriteFile(fullPath, f.Data, 0644); err != nil {
			return fmt.Errorf("%w: %w: %v", ErrIOStagingFailure, ErrFileCreateFailed, err)
		}

		s.logger.Info("файл сохранён",
			zap.String("path", fullPath),
			zap.Int("size", len(f.Data)),
		)
	}

	return nil
}

// resolveDir привязывает путь клиента к ExtractRoot, абсолютные пути
// трактуются как относительные.
func (s *archiveService) resolveDir(dir string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimLeft(filepath.ToSlash(dir), "/")))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %w: %q", ErrIOStagingFailure, ErrUnsafeFilePath, dir)
	}

	return filepath.Join(s.cfg.ExtractRoot, rel), nil
}

func wrapCodecErr(err error) error {
	switch {
	case errors.Is(err, codec.ErrRead):
		return fmt.Errorf("%w: %w", ErrCorruptArchive, err)
	case errors.Is(err, codec.ErrWrite):
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	default:
		return err
	}
}
