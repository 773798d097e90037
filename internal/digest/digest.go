// Package digest fingerprints files by content.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// DefaultBufferSize bounds memory use regardless of file size.
const DefaultBufferSize = 64 * 1024

// Reader streams r through SHA-1 using a buffer of bufSize bytes and returns
// the lowercase hex digest.
func Reader(r io.Reader, bufSize int) (string, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	h := sha1.New()
	if _, err := io.CopyBuffer(onlyWriter{h}, onlyReader{r}, make([]byte, bufSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File hashes the full content of path.
func File(path string, bufSize int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	sum, err := Reader(f, bufSize)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, nil
}

// io.CopyBuffer skips the buffer when either side implements
// WriterTo/ReaderFrom; these wrappers keep the read size bounded.
type onlyReader struct{ io.Reader }
type onlyWriter struct{ io.Writer }
