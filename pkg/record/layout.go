package record

import "fmt"

// Field describes one value at a fixed position in a source.
// Fields may overlap; the same bytes can be decoded several ways.
type Field struct {
	Name   string
	Offset int64
	Length int
	Conv   Converter
}

// Layout is an ordered, validated field table.
type Layout struct {
	fields []Field
	suffix string
}

// NewLayout validates fields against their converters and returns a Layout
// that decodes them in declaration order.
func NewLayout(fields ...Field) (*Layout, error) {
	for _, f := range fields {
		if f.Conv == nil {
			return nil, fmt.Errorf("field %q: missing converter", f.Name)
		}
		if f.Offset < 0 {
			return nil, fmt.Errorf("field %q: negative offset %d", f.Name, f.Offset)
		}
		if b, ok := f.Conv.(Bit); ok && b.Pos > 7 {
			return nil, fmt.Errorf("field %q: bit position %d out of range 0-7", f.Name, b.Pos)
		}
		want := f.Conv.width()
		if f.Length <= 0 || (want != 0 && f.Length != want) {
			if want == 0 {
				want = 1
			}
			return nil, &InvalidFieldWidthError{Field: f.Name, Conv: f.Conv.String(), Want: want, Got: f.Length}
		}
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return &Layout{fields: out}, nil
}

// MustLayout is NewLayout for package-level tables. It panics on a bad table.
func MustLayout(fields ...Field) *Layout {
	l, err := NewLayout(fields...)
	if err != nil {
		panic(err)
	}
	return l
}

// WithSuffix returns a copy of l that appends suffix to every produced key.
func (l *Layout) WithSuffix(suffix string) *Layout {
	return &Layout{fields: l.fields, suffix: suffix}
}

// Suffix returns the key suffix applied by l.
func (l *Layout) Suffix() string { return l.suffix }

// Key returns the record key produced for a field name.
func (l *Layout) Key(name string) string { return name + l.suffix }

// Fields returns the field table in declaration order.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)
	return out
}

// Extent is the minimum source size that satisfies every field.
func (l *Layout) Extent() int64 {
	var end int64
	for _, f := range l.fields {
		if e := f.Offset + int64(f.Length); e > end {
			end = e
		}
	}
	return end
}
