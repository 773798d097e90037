package scan

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// MalformedFilenameError is returned for a patch file whose name does not
// follow <unit>-<tok>-<tok>-<tok>-<offset>-<checksum>.
type MalformedFilenameError struct {
	Name   string
	Tokens int
	Reason string
}

func (e *MalformedFilenameError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed patch filename %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("malformed patch filename %q: want %d dash-separated tokens, got %d",
		e.Name, patchTokens, e.Tokens)
}

// UnexpectedSizeWarning reports an EEPROM dump whose size differs from the
// expected one. Decoding continues.
type UnexpectedSizeWarning struct {
	Path string
	Size int64
	Want int64
}

func (w *UnexpectedSizeWarning) Error() string {
	return fmt.Sprintf("unexpected eeprom size %s (%d bytes, want %d): %s",
		humanize.IBytes(uint64(w.Size)), w.Size, w.Want, w.Path)
}

// UnidentifiedHeaderWarning reports a partition whose header lacks the IFS
// magic or stage2 marker. Its fields are still reported.
type UnidentifiedHeaderWarning struct {
	Path   string
	Magic  string
	Marker string
}

func (w *UnidentifiedHeaderWarning) Error() string {
	return fmt.Sprintf("partition header not recognised (magic %q, marker %q): %s", w.Magic, w.Marker, w.Path)
}

// SkipError wraps a per-record failure. The record is left out of the
// result and the scan continues.
type SkipError struct {
	Path string
	Err  error
}

func (e *SkipError) Error() string { return fmt.Sprintf("skipped %s: %v", e.Path, e.Err) }
func (e *SkipError) Unwrap() error { return e.Err }
