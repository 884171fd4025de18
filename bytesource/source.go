// Package bytesource provides the byte buffers the extraction engine
// scans over.
//
// Save files arrive in several shapes: plain files, gzip/zstd/lz4
// compressed backups, and large world files best memory-mapped. A Source
// abstracts over all of them and carries a content fingerprint so
// callers can cheaply detect that a file changed between scans.
package bytesource

import (
	"errors"
	"fmt"
	"os"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/internal/hash"
)

// Source is an immutable byte buffer with a content fingerprint.
// Implementations are safe for concurrent reads; Close is not.
type Source interface {
	// Bytes returns the underlying buffer. The slice must not be
	// modified and must not be used after Close.
	Bytes() []byte
	// Fingerprint returns a 64-bit content hash of the buffer.
	Fingerprint() uint64
	// Close releases the buffer. Closing twice reports ErrSourceClosed.
	Close() error
}

var _ Source = (*memSource)(nil)

// memSource holds the whole buffer in memory.
type memSource struct {
	data   []byte
	fp     uint64
	closed bool
}

// FromBytes wraps an in-memory buffer as a Source. The buffer is not
// copied; the caller must not modify it afterwards.
func FromBytes(data []byte) Source {
	return &memSource{data: data, fp: hash.Fingerprint(data)}
}

func (s *memSource) Bytes() []byte {
	if s.closed {
		return nil
	}

	return s.data
}

func (s *memSource) Fingerprint() uint64 { return s.fp }

func (s *memSource) Close() error {
	if s.closed {
		return errs.ErrSourceClosed
	}
	s.closed = true
	s.data = nil

	return nil
}

// ReadFile loads a file fully into memory as a Source.
func ReadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return FromBytes(data), nil
}

// OpenAuto loads a file and transparently decompresses it when its magic
// bytes name a known compression format. Files without a recognized
// magic are returned as-is.
func OpenAuto(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	plain, err := Decompress(data)
	if err == nil {
		return FromBytes(plain), nil
	}
	if errors.Is(err, errs.ErrUnknownMagic) {
		return FromBytes(data), nil
	}

	return nil, fmt.Errorf("decompress %s: %w", path, err)
}
