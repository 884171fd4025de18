//go:build unix

package bytesource

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/internal/hash"
)

var _ Source = (*mmapSource)(nil)

// mmapSource maps a file read-only. World saves can run into the
// gigabytes, so avoiding the copy matters for batch scans.
type mmapSource struct {
	data   []byte
	fp     uint64
	closed bool
}

// Mmap memory-maps a file as a Source. Empty files fall back to an
// in-memory Source since a zero-length mapping is invalid.
func Mmap(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return FromBytes(nil), nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()),
		unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &mmapSource{data: data, fp: hash.Fingerprint(data)}, nil
}

func (s *mmapSource) Bytes() []byte {
	if s.closed {
		return nil
	}

	return s.data
}

func (s *mmapSource) Fingerprint() uint64 { return s.fp }

func (s *mmapSource) Close() error {
	if s.closed {
		return errs.ErrSourceClosed
	}
	s.closed = true

	data := s.data
	s.data = nil

	return unix.Munmap(data)
}
