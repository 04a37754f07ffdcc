package codec

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/internal/interfaces/infra"
	"github.com/hodzhakhov/archiver/models"
)

const memberMode fs.FileMode = 0o644

var _ infra.CodecProvider = (*provider)(nil)

type provider struct {
	codecs map[models.ArchiveFormat]infra.Codec
}

func New() infra.CodecProvider {
	now := time.Now
	return &provider{
		codecs: map[models.ArchiveFormat]infra.Codec{
			models.FormatZIP:    &zipCodec{now: now},
			models.FormatTarGz:  &tarCodec{now: now, compression: gzipCompression{}},
			models.FormatTarBz2: &tarCodec{now: now, compression: bzip2Compression{}},
			models.FormatSevenZ: &sevenZCodec{now: now},
		},
	}
}

func (p *provider) Codec(format models.ArchiveFormat) (infra.Codec, error) {
	c, ok := p.codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", formats.ErrUnsupportedFormat, formats.CanonicalName(format))
	}
	return c, nil
}

// readMember читает содержимое файла целиком; обрезанный хвост не считается
// ошибкой, возвращается то, что удалось прочитать.
func readMember(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return data, nil
}
