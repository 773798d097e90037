package record

import "fmt"

// TruncatedSourceError is returned when a source ends before a field's declared range.
// It is fatal for the record being decoded only.
type TruncatedSourceError struct {
	Field     string
	Offset    int64
	Length    int
	Available int
}

func (e *TruncatedSourceError) Error() string {
	return fmt.Sprintf("truncated source: field %q needs %d bytes at 0x%x, got %d",
		e.Field, e.Length, e.Offset, e.Available)
}

// InvalidFieldWidthError means a converter was handed a slice it cannot interpret.
// This is a static field table mistake, not a data problem.
type InvalidFieldWidthError struct {
	Field string
	Conv  string
	Want  int
	Got   int
}

func (e *InvalidFieldWidthError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid field width for %s: want %d bytes, got %d", e.Conv, e.Want, e.Got)
	}
	return fmt.Sprintf("invalid field width for %q (%s): want %d bytes, got %d",
		e.Field, e.Conv, e.Want, e.Got)
}
