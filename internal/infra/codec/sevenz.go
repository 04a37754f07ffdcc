package codec

import (
	"bytes"
	"time"

	"github.com/bodgit/sevenzip"

	"github.com/hodzhakhov/archiver/internal/infra/sevenz"
	"github.com/hodzhakhov/archiver/models"
)

type sevenZCodec struct {
	now func() time.Time
}

func (c *sevenZCodec) Pack(files []models.FileEntry) ([]byte, error) {
	entries := make([]sevenz.Entry, 0, len(files))
	for _, f := range files {
		entries = append(entries, sevenz.Entry{
			Name:    f.Name,
			Data:    f.Data,
			ModTime: c.now(),
			Mode:    memberMode,
		})
	}

	var buf bytes.Buffer
	if err := sevenz.Write(&buf, entries); err != nil {
		return nil, writeErr(StageFinalize, "", err)
	}

	return buf.Bytes(), nil
}

func (c *sevenZCodec) Unpack(data []byte) ([]models.FileEntry, error) {
	zr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, readErr(StageOpen, "", err)
	}

	files := make([]models.FileEntry, 0, len(zr.File))
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
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
