package bytesource

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
)

// Compression magic bytes. Backup tooling around ASA saves produces all
// three formats.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Format identifies a compression container.
type Format int

const (
	FormatNone Format = iota
	FormatGzip
	FormatZstd
	FormatLZ4
)

func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// SniffFormat inspects the leading magic bytes and reports the
// compression container, or FormatNone when none matches.
func SniffFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(data, magicLZ4):
		return FormatLZ4
	case bytes.HasPrefix(data, magicGzip):
		return FormatGzip
	default:
		return FormatNone
	}
}

// Decompress inflates a compressed buffer. Buffers whose magic does not
// name a known format report ErrUnknownMagic.
func Decompress(data []byte) ([]byte, error) {
	switch SniffFormat(data) {
	case FormatGzip:
		return gunzip(data)
	case FormatZstd:
		return unzstd(data)
	case FormatLZ4:
		return unlz4(data)
	default:
		return nil, errs.ErrUnknownMagic
	}
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}

	return out, nil
}

func unzstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out, nil
}

func unlz4(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	return out, nil
}
