package formats

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hodzhakhov/archiver/models"
)

const minSniffLen = 4

type formatInfo struct {
	name        string
	ext         string
	contentType string
	aliases     []string
}

var registry = map[models.ArchiveFormat]formatInfo{
	models.FormatZIP: {
		name:        "zip",
		ext:         ".zip",
		contentType: "application/zip",
	},
	models.FormatTarGz: {
		name:        "tar.gz",
		ext:         ".tar.gz",
		contentType: "application/gzip",
		aliases:     []string{"targz", "tgz"},
	},
	models.FormatTarBz2: {
		name:        "tar.bz2",
		ext:         ".tar.bz2",
		contentType: "application/x-bzip2",
		aliases:     []string{"tarbz2", "tbz2"},
	},
	models.FormatSevenZ: {
		name:        "7z",
		ext:         ".7z",
		contentType: "application/x-7z-compressed",
		aliases:     []string{"7zip"},
	},
}

var ordered = []models.ArchiveFormat{
	models.FormatZIP,
	models.FormatTarGz,
	models.FormatTarBz2,
	models.FormatSevenZ,
}

var lookup = func() map[string]models.ArchiveFormat {
	m := make(map[string]models.ArchiveFormat)
	for f, info := range registry {
		m[info.name] = f
		for _, a := range info.aliases {
			m[a] = f
		}
	}
	return m
}()

var (
	sigZip    = []byte{0x50, 0x4B}
	sigSevenZ = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	sigGzip   = []byte{0x1F, 0x8B}
	sigBzip2  = []byte{0x42, 0x5A}
)

// Resolve ищет формат по имени без учёта регистра, включая алиасы.
func Resolve(name string) (models.ArchiveFormat, error) {
	f, ok := lookup[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

func CanonicalName(f models.ArchiveFormat) string {
	if info, ok := registry[f]; ok {
		return info.name
	}
	return "unknown"
}

func FileExtension(f models.ArchiveFormat) string {
	if info, ok := registry[f]; ok {
		return info.ext
	}
	return ".archive"
}

func ContentType(f models.ArchiveFormat) string {
	if info, ok := registry[f]; ok {
		return info.contentType
	}
	return "application/octet-stream"
}

func ListSupported() []string {
	names := make([]string, 0, len(ordered))
	for _, f := range ordered {
		names = append(names, registry[f].name)
	}
	return names
}

// Sniff определяет формат по сигнатуре. Нераспознанные данные считаются zip.
func Sniff(data []byte) (models.ArchiveFormat, error) {
	if len(data) < minSniffLen {
		return 0, fmt.Errorf("%w: %d байт", ErrDataTooSmall, len(data))
	}

	switch {
	case bytes.HasPrefix(data, sigZip):
		return models.FormatZIP, nil
	case bytes.HasPrefix(data, sigSevenZ):
		return models.FormatSevenZ, nil
	case bytes.HasPrefix(data, sigGzip):
		return models.FormatTarGz, nil
	case bytes.HasPrefix(data, sigBzip2):
		return models.FormatTarBz2, nil
	}

	return models.FormatZIP, nil
}
