package record

import (
	"errors"
	"fmt"
	"io"
)

// Decode reads every field of l from src in declaration order.
//
// A field that runs past the end of src yields *TruncatedSourceError and no
// record. Later fields with a name already produced overwrite the earlier
// value; tables rely on this to re-decode sub-ranges of a larger blob.
func Decode(src io.ReaderAt, l *Layout) (*Record, error) {
	rec := New()
	for _, f := range l.fields {
		buf := make([]byte, f.Length)
		n, err := src.ReadAt(buf, f.Offset)
		if n < f.Length {
			if err == nil || errors.Is(err, io.EOF) {
				return nil, &TruncatedSourceError{Field: f.Name, Offset: f.Offset, Length: f.Length, Available: n}
			}
			return nil, fmt.Errorf("read field %q: %w", f.Name, err)
		}
		v, err := f.Conv.Convert(buf)
		if err != nil {
			var werr *InvalidFieldWidthError
			if errors.As(err, &werr) && werr.Field == "" {
				werr.Field = f.Name
			}
			return nil, err
		}
		rec.Set(l.Key(f.Name), v)
	}
	return rec, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte, l *Layout) (*Record, error) {
	return Decode(byteSource(data), l)
}

type byteSource []byte

func (b byteSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset %d", off)
	}
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
