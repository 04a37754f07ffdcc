package infra

import "github.com/hodzhakhov/archiver/models"

// Codec упаковывает и распаковывает контейнер одного формата целиком в памяти.
//
//go:generate go run github.com/vektra/mockery/v2@v2.53.2 --name=Codec --output=../../../mocks
type Codec interface {
	Pack(files []models.FileEntry) ([]byte, error)
	Unpack(data []byte) ([]models.FileEntry, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.53.2 --name=CodecProvider --output=../../../mocks
type CodecProvider interface {
	Codec(format models.ArchiveFormat) (Codec, error)
}
