package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodzhakhov/archiver/internal/formats"
	"github.com/hodzhakhov/archiver/models"
)

var allFormats = []models.ArchiveFormat{
	models.FormatZIP,
	models.FormatTarGz,
	models.FormatTarBz2,
	models.FormatSevenZ,
}

func testEntries() []models.FileEntry {
	binary := make([]byte, 256)
	for i := range binary {
		binary[i] = byte(i)
	}

	return []models.FileEntry{
		{Name: "a.txt", Data: []byte("hi")},
		{Name: "dir/b.txt", Data: []byte("yo")},
		{Name: "empty.txt", Data: []byte{}},
		{Name: "bin/data.bin", Data: binary},
		{Name: "big.txt", Data: bytes.Repeat([]byte("archiver "), 10000)},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	p := New()

	for _, format := range allFormats {
		t.Run(formats.CanonicalName(format), func(t *testing.T) {
			c, err := p.Codec(format)
			require.NoError(t, err)

			entries := testEntries()
			packed, err := c.Pack(entries)
			require.NoError(t, err)
			require.NotEmpty(t, packed)

			sniffed, err := formats.Sniff(packed)
			require.NoError(t, err)
			assert.Equal(t, format, sniffed)

			unpacked, err := c.Unpack(packed)
			require.NoError(t, err)

			normalize := cmp.Transformer("normalize", func(b []byte) string { return string(b) })
			if diff := cmp.Diff(entries, unpacked, normalize); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCodec_CorruptData(t *testing.T) {
	p := New()
	garbage := []byte("definitely not an archive at all, just text")

	for _, format := range allFormats {
		t.Run(formats.CanonicalName(format), func(t *testing.T) {
			c, err := p.Codec(format)
			require.NoError(t, err)

			_, err = c.Unpack(garbage)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRead)

			var stageErr *StageError
			require.True(t, errors.As(err, &stageErr))
			assert.NotEmpty(t, stageErr.Stage)
		})
	}
}

func TestCodec_TruncatedZip(t *testing.T) {
	c, err := New().Codec(models.FormatZIP)
	require.NoError(t, err)

	packed, err := c.Pack(testEntries())
	require.NoError(t, err)

	_, err = c.Unpack(packed[:len(packed)/2])
	assert.ErrorIs(t, err, ErrRead)
}

func TestCodec_UnsupportedFormat(t *testing.T) {
	_, err := New().Codec(models.ArchiveFormat(99))
	assert.ErrorIs(t, err, formats.ErrUnsupportedFormat)
}

func TestStageError_Message(t *testing.T) {
	err := writeErr(StageHeader, "a.txt", errors.New("boom"))

	assert.ErrorIs(t, err, ErrWrite)
	assert.NotErrorIs(t, err, ErrRead)
	assert.Contains(t, err.Error(), "header")
	assert.Contains(t, err.Error(), "a.txt")
	assert.Contains(t, err.Error(), "boom")
}
