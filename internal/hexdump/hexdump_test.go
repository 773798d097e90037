package hexdump

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"EEPROM dump",
		"",
		"0x0000\tDE AD BE EF",
		"0x0004\t00 01\tascii",
		"  0x0006\tff  ",
	}, "\n")

	var out bytes.Buffer
	n, err := Convert(strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0xff}
	if !bytes.Equal(out.Bytes(), want) || n != int64(len(want)) {
		t.Fatalf("got % x (n=%d) want % x", out.Bytes(), n, want)
	}
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"0x0000 DE AD", // no tab
		"0x0000\tZZ",   // not hex
		"0x0000\tABC",  // odd length
	} {
		if _, err := Convert(strings.NewReader(in), &bytes.Buffer{}); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestConvertFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "unit-EEProm.txt")
	if err := os.WriteFile(path, []byte("0x0000\t01 02\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, n, err := ConvertFile(path)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != filepath.Join(dir, "unit-EEProm.bin") || n != 2 {
		t.Fatalf("unexpected output %s (%d bytes)", out, n)
	}
	data, _ := os.ReadFile(out)
	if !bytes.Equal(data, []byte{1, 2}) {
		t.Fatalf("unexpected content % x", data)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("0x0\tqq\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := ConvertFile(bad); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(OutputPath(bad)); !os.IsNotExist(err) {
		t.Fatalf("partial output should be removed, stat err=%v", err)
	}
}

func TestConvertFileKeepsBinInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	orig := []byte("0x0000\tAA BB CC\n")
	for _, name := range []string{"dump.bin", "dump.BIN"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, orig, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, _, err := ConvertFile(path); !errors.Is(err, ErrSameFile) {
			t.Fatalf("%s: expected ErrSameFile, got %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if !bytes.Equal(data, orig) {
			t.Fatalf("%s: input modified, now %q", name, data)
		}
	}
}
