// Package hexdump converts legacy text EEPROM dumps to binary.
//
// The text form has one row per line, address and data separated by a tab:
//
//	0x0000	FF FF 00 12 ...
//
// Lines without "0x" (banners, blank lines) are ignored.
package hexdump

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Convert reads a text dump from r and writes the decoded bytes to w.
// It returns the number of bytes written.
func Convert(r io.Reader, w io.Writer) (int64, error) {
	sc := bufio.NewScanner(r)
	var total int64
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if !strings.Contains(text, "0x") {
			continue
		}
		cols := strings.Split(strings.TrimSpace(text), "\t")
		if len(cols) < 2 {
			return total, fmt.Errorf("line %d: missing data column", line)
		}
		data, err := hex.DecodeString(strings.ReplaceAll(cols[1], " ", ""))
		if err != nil {
			return total, fmt.Errorf("line %d: %w", line, err)
		}
		n, err := w.Write(data)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	if err := sc.Err(); err != nil {
		return total, err
	}
	return total, nil
}

// ErrSameFile is returned when the output path would overwrite the input.
var ErrSameFile = errors.New("hexdump: output would overwrite input")

// OutputPath is path with its extension replaced by .bin.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".bin"
}

// ConvertFile converts path and writes OutputPath(path). A partial output is
// removed on error. Inputs that already carry the .bin extension are
// rejected with ErrSameFile and left untouched.
func ConvertFile(path string) (string, int64, error) {
	outPath := OutputPath(path)
	if sameFile(path, outPath) {
		return "", 0, fmt.Errorf("convert %s: %w", path, ErrSameFile)
	}

	in, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(outPath)
	if err != nil {
		return "", 0, err
	}
	bw := bufio.NewWriter(out)
	n, err := Convert(in, bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(outPath)
		return "", 0, fmt.Errorf("convert %s: %w", path, err)
	}
	return outPath, n, nil
}

// sameFile compares names case-insensitively for case-folding filesystems,
// then falls back to os.SameFile when the output already exists.
func sameFile(a, b string) bool {
	if strings.EqualFold(filepath.Clean(a), filepath.Clean(b)) {
		return true
	}
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}
