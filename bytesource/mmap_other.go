//go:build !unix

package bytesource

// Mmap falls back to a plain read on platforms without mmap support.
func Mmap(path string) (Source, error) {
	return ReadFile(path)
}
