package source

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestOpenReadAt(t *testing.T) {
	t.Parallel()

	data := []byte("0123456789")
	f, err := Open(writeTemp(t, data), 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	if f.Size() != int64(len(data)) {
		t.Fatalf("size: got %d", f.Size())
	}
	buf := make([]byte, 4)
	n, err := f.ReadAt(buf, 3)
	if err != nil || n != 4 || !bytes.Equal(buf, []byte("3456")) {
		t.Fatalf("ReadAt: n=%d err=%v buf=%q", n, err, buf)
	}

	n, err = f.ReadAt(buf, 8)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("short ReadAt: n=%d err=%v", n, err)
	}
	if _, err := f.ReadAt(buf, 100); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt past end: %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	f, err := Open(writeTemp(t, []byte("abc")), 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, err := f.ReadAt(make([]byte, 1), 0); !errors.Is(err, ErrClosed) {
		t.Fatalf("read after close: %v", err)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	t.Parallel()

	f, err := Open(writeTemp(t, nil), 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.ReadAt(make([]byte, 1), 0); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF on empty file, got %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	t.Parallel()

	if _, err := Open(filepath.Join(t.TempDir(), "nope.bin"), 0); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}
