// Package source opens files as read-only, byte-addressable sources.
package source

import (
	"errors"
	"io"
	"os"
)

var ErrClosed = errors.New("source: closed")

// File is a read-only view of a file. It implements io.ReaderAt.
// The returned file must be closed to release any mapping.
type File struct {
	Path    string
	data    []byte
	size    int64
	mmapped bool
	closed  bool
}

// Open maps path read-only. If mmap is unavailable or fails it falls back to
// reading at most limit bytes (limit <= 0 reads the whole file).
func Open(path string, limit int64) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := st.Size()
	if size > int64(int(^uint(0)>>1)) {
		return nil, errors.New("source: file too large to address")
	}

	if size > 0 {
		if data, ok := mapFile(f, int(size)); ok {
			return &File{Path: path, data: data, size: size, mmapped: true}, nil
		}
	}

	n := size
	if limit > 0 && limit < n {
		n = limit
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return &File{Path: path, data: data, size: size}, nil
}

// Size is the size of the underlying file, which may exceed the readable
// window when the fallback path applied a limit.
func (f *File) Size() int64 { return f.size }

// ReadAt implements io.ReaderAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if f == nil || f.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, errors.New("source: negative offset")
	}
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *File) Close() error {
	if f == nil || f.closed {
		return nil
	}
	var err error
	if f.mmapped {
		err = unmapFile(f.data)
	}
	f.data = nil
	f.mmapped = false
	f.closed = true
	return err
}
