// Package sevenz пишет 7z-контейнеры без сжатия (кодер Copy). Каждый
// непустой файл лежит в отдельной папке, пустые файлы записываются как
// empty stream.
package sevenz

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"
	"io/fs"
	"time"
	"unicode/utf16"
)

var Signature = []byte{'7', 'z', 0xBC, 0xAF, 0x27, 0x1C}

const (
	versionMajor = 0
	versionMinor = 4

	signatureHeaderSize = 32
)

const (
	idEnd              = 0x00
	idHeader           = 0x01
	idMainStreamsInfo  = 0x04
	idFilesInfo        = 0x05
	idPackInfo         = 0x06
	idUnpackInfo       = 0x07
	idSubStreamsInfo   = 0x08
	idSize             = 0x09
	idCRC              = 0x0A
	idFolder           = 0x0B
	idCodersUnpackSize = 0x0C
	idEmptyStream      = 0x0E
	idEmptyFile        = 0x0F
	idName             = 0x11
	idMTime            = 0x14
	idAttributes       = 0x15
)

const (
	coderCopyFlags = 0x01
	coderCopyID    = 0x00

	attrArchive       = 0x20
	attrUnixExtension = 0x8000
	unixRegular       = 0o100000

	// смещение FILETIME (1601-01-01) относительно unix epoch в 100нс интервалах
	filetimeEpochDelta = 116444736000000000
)

type Entry struct {
	Name    string
	Data    []byte
	ModTime time.Time
	Mode    fs.FileMode
}

func Write(w io.Writer, entries []Entry) error {
	var packed bytes.Buffer
	for _, e := range entries {
		packed.Write(e.Data)
	}

	var header []byte
	if len(entries) > 0 {
		header = buildHeader(entries)
	}

	start := make([]byte, 20)
	binary.LittleEndian.PutUint64(start[0:8], uint64(packed.Len()))
	binary.LittleEndian.PutUint64(start[8:16], uint64(len(header)))
	binary.LittleEndian.PutUint32(start[16:20], crc32.ChecksumIEEE(header))

	sig := make([]byte, 0, signatureHeaderSize)
	sig = append(sig, Signature...)
	sig = append(sig, versionMajor, versionMinor)
	sig = binary.LittleEndian.AppendUint32(sig, crc32.ChecksumIEEE(start))
	sig = append(sig, start...)

	for _, chunk := range [][]byte{sig, packed.Bytes(), header} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

func buildHeader(entries []Entry) []byte {
	var b headerBuffer

	var streams []Entry
	empty := make([]bool, len(entries))
	for i, e := range entries {
		if len(e.Data) == 0 {
			empty[i] = true
			continue
		}
		streams = append(streams, e)
	}

	b.WriteByte(idHeader)

	if len(streams) > 0 {
		b.WriteByte(idMainStreamsInfo)

		b.WriteByte(idPackInfo)
		b.writeNumber(0)
		b.writeNumber(uint64(len(streams)))
		b.WriteByte(idSize)
		for _, s := range streams {
			b.writeNumber(uint64(len(s.Data)))
		}
		b.WriteByte(idEnd)

		b.WriteByte(idUnpackInfo)
		b.WriteByte(idFolder)
		b.writeNumber(uint64(len(streams)))
		b.WriteByte(0)
		for range streams {
			b.writeNumber(1)
			b.WriteByte(coderCopyFlags)
			b.WriteByte(coderCopyID)
		}
		b.WriteByte(idCodersUnpackSize)
		for _, s := range streams {
			b.writeNumber(uint64(len(s.Data)))
		}
		b.WriteByte(idEnd)

		b.WriteByte(idSubStreamsInfo)
		b.WriteByte(idCRC)
		b.WriteByte(1)
		for _, s := range streams {
			b.writeUint32(crc32.ChecksumIEEE(s.Data))
		}
		b.WriteByte(idEnd)

		b.WriteByte(idEnd)
	}

	b.WriteByte(idFilesInfo)
	b.writeNumber(uint64(len(entries)))

	if numEmpty := len(entries) - len(streams); numEmpty > 0 {
		b.writeProperty(idEmptyStream, bitVector(empty))

		emptyFiles := make([]bool, numEmpty)
		for i := range emptyFiles {
			emptyFiles[i] = true
		}
		b.writeProperty(idEmptyFile, bitVector(emptyFiles))
	}

	var names bytes.Buffer
	names.WriteByte(0)
	for _, e := range entries {
		for _, u := range utf16.Encode([]rune(e.Name)) {
			names.Write(binary.LittleEndian.AppendUint16(nil, u))
		}
		names.Write([]byte{0, 0})
	}
	b.writeProperty(idName, names.Bytes())

	var times bytes.Buffer
	times.Write([]byte{1, 0})
	for _, e := range entries {
		times.Write(binary.LittleEndian.AppendUint64(nil, toFiletime(e.ModTime)))
	}
	b.writeProperty(idMTime, times.Bytes())

	var attrs bytes.Buffer
	attrs.Write([]byte{1, 0})
	for _, e := range entries {
		attrs.Write(binary.LittleEndian.AppendUint32(nil, attributes(e.Mode)))
	}
	b.writeProperty(idAttributes, attrs.Bytes())

	b.WriteByte(idEnd)
	b.WriteByte(idEnd)

	return b.Bytes()
}

type headerBuffer struct {
	bytes.Buffer
}

// writeNumber кодирует число в формате 7z: количество ведущих единиц
// первого байта равно числу дополнительных байт (little-endian).
func (b *headerBuffer) writeNumber(v uint64) {
	first := byte(0)
	mask := byte(0x80)
	i := 0
	for ; i < 8; i++ {
		if v < uint64(1)<<(7*(i+1)) {
			first |= byte(v >> (8 * i))
			break
		}
		first |= mask
		mask >>= 1
	}
	b.WriteByte(first)
	for ; i > 0; i-- {
		b.WriteByte(byte(v))
		v >>= 8
	}
}

func (b *headerBuffer) writeUint32(v uint32) {
	b.Write(binary.LittleEndian.AppendUint32(nil, v))
}

func (b *headerBuffer) writeProperty(id byte, data []byte) {
	b.WriteByte(id)
	b.writeNumber(uint64(len(data)))
	b.Write(data)
}

func bitVector(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, set := range bits {
		if set {
			out[i/8] |= 0x80 >> (i % 8)
		}
	}
	return out
}

func toFiletime(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.UnixNano()/100) + filetimeEpochDelta
}

func attributes(mode fs.FileMode) uint32 {
	perm := uint32(mode.Perm())
	if perm == 0 {
		perm = 0o644
	}
	return attrArchive | attrUnixExtension | (unixRegular|perm)<<16
}
