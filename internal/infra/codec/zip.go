package codec

import (
	"bytes"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/hodzhakhov/archiver/models"
)

type zipCodec struct {
	now func() time.Time
}

func (c *zipCodec) Pack(files []models.FileEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		fh := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: c.now(),
		}
		fh.SetMode(memberMode)

		w, err := zw.CreateHeader(fh)
		if err != nil {
			return nil, writeErr(StageHeader, f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, writeErr(StageData, f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, writeErr(StageFinalize, "", err)
	}

	return buf.Bytes(), nil
}

func (c *zipCodec) Unpack(data []byte) ([]models.FileEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, readErr(StageOpen, "", err)
	}

	files := make([]models.FileEntry, 0, len(zr.File))
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() || strings.HasSuffix(zf.Name, "/") {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return nil, readErr(StageHeader, zf.Name, err)
		}
		content, err := readMember(rc)
		rc.Close()
		if err != nil {
			return nil, readErr(StageData, zf.Name, err)
		}

		files = append(files, models.FileEntry{Name: zf.Name, Data: content})
	}

	return files, nil
}
