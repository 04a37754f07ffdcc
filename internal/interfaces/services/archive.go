package services

import (
	"context"

	"github.com/hodzhakhov/archiver/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.53.2 --name=ArchiveService --output=../../../mocks
type ArchiveService interface {
	Compress(ctx context.Context, format models.ArchiveFormat, files []models.FileEntry) ([]byte, error)
	Extract(ctx context.Context, format models.ArchiveFormat, data []byte) ([]models.FileEntry, error)

	Process(ctx context.Context, req *models.ArchiveRequest) (*models.ArchiveResult, error)
	SaveExtracted(ctx context.Context, dir string, files []models.FileEntry) error
}
