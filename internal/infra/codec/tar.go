package codec

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"

	"github.com/hodzhakhov/archiver/models"
)

// compression — внешний слой поверх tar-потока.
type compression interface {
	NewWriter(w io.Writer) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)
}

type gzipCompression struct{}

func (gzipCompression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

func (gzipCompression) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

type bzip2Compression struct{}

func (bzip2Compression) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
}

func (bzip2Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}

type tarCodec struct {
	now         func() time.Time
	compression compression
}

func (c *tarCodec) Pack(files []models.FileEntry) ([]byte, error) {
	var buf bytes.Buffer

	cw, err := c.compression.NewWriter(&buf)
	if err != nil {
		return nil, writeErr(StageOpen, "", err)
	}
	tw := tar.NewWriter(cw)

	for _, f := range files {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     f.Name,
			Size:     int64(len(f.Data)),
			Mode:     int64(memberMode),
			ModTime:  c.now(),
			Format:   tar.FormatGNU,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, writeErr(StageHeader, f.Name, err)
		}
		if _, err := tw.Write(f.Data); err != nil {
			return nil, writeErr(StageData, f.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, writeErr(StageFinalize, "", err)
	}
	if err := cw.Close(); err != nil {
		return nil, writeErr(StageFinalize, "", err)
	}

	return buf.Bytes(), nil
}

func (c *tarCodec) Unpack(data []byte) ([]models.FileEntry, error) {
	cr, err := c.compression.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, readErr(StageOpen, "", err)
	}
	defer cr.Close()

	tr := tar.NewReader(cr)
	var files []models.FileEntry
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readErr(StageHeader, "", err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		content, err := readMember(tr)
		if err != nil {
			return nil, readErr(StageData, hdr.Name, err)
		}

		files = append(files, models.FileEntry{Name: hdr.Name, Data: content})
	}

	if files == nil {
		files = []models.FileEntry{}
	}
	return files, nil
}
