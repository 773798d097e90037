package record

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Converter turns a fixed-length byte slice into a Value.
//
// The set of converters is closed: the unexported width method keeps other
// packages from adding variants, so a field table can be validated once when
// it is built.
type Converter interface {
	Convert(b []byte) (Value, error)
	String() string
	// width is the exact input length accepted, or 0 for any positive length.
	width() int
}

// asciiSpace is the set trimmed from byte fields. NUL and 0xFF padding are
// kept.
const asciiSpace = " \t\n\r\v\f"

// BytesTrimmed returns the raw bytes with surrounding ASCII whitespace removed.
// Bytes are copied verbatim, invalid UTF-8 included.
type BytesTrimmed struct{}

func (BytesTrimmed) Convert(b []byte) (Value, error) {
	return Text(string(bytes.Trim(b, asciiSpace))), nil
}

func (BytesTrimmed) String() string { return "bytes-trimmed" }
func (BytesTrimmed) width() int     { return 0 }

// StringTrimmed decodes UTF-8 and removes surrounding ASCII whitespace.
// Invalid sequences become U+FFFD.
type StringTrimmed struct{}

func (StringTrimmed) Convert(b []byte) (Value, error) {
	return Text(decodeUTF8(bytes.Trim(b, asciiSpace))), nil
}

func (StringTrimmed) String() string { return "string-trimmed" }
func (StringTrimmed) width() int     { return 0 }

// Plain decodes UTF-8 without trimming.
type Plain struct{}

func (Plain) Convert(b []byte) (Value, error) {
	return Text(decodeUTF8(b)), nil
}

func (Plain) String() string { return "plain" }
func (Plain) width() int     { return 0 }

// Lookup maps a single byte through a code table. Unknown codes render as
// 0xhh so they survive into the report unchanged.
type Lookup struct {
	Table map[byte]string
}

func (l Lookup) Convert(b []byte) (Value, error) {
	if len(b) != 1 {
		return Value{}, &InvalidFieldWidthError{Conv: l.String(), Want: 1, Got: len(b)}
	}
	if label, ok := l.Table[b[0]]; ok {
		return Text(label), nil
	}
	return Text(hexByte(b[0])), nil
}

func (Lookup) String() string { return "lookup" }
func (Lookup) width() int     { return 1 }

// Bit extracts bit Pos (0 = least significant) of a single byte.
type Bit struct {
	Pos uint
}

func (c Bit) Convert(b []byte) (Value, error) {
	if len(b) != 1 {
		return Value{}, &InvalidFieldWidthError{Conv: c.String(), Want: 1, Got: len(b)}
	}
	return Flag((b[0] >> c.Pos) & 1), nil
}

func (c Bit) String() string { return fmt.Sprintf("bit(%d)", c.Pos) }
func (Bit) width() int       { return 1 }

// Binary renders a single byte as 8 binary digits, most significant first.
type Binary struct{}

func (c Binary) Convert(b []byte) (Value, error) {
	if len(b) != 1 {
		return Value{}, &InvalidFieldWidthError{Conv: c.String(), Want: 1, Got: len(b)}
	}
	return Text(fmt.Sprintf("%08b", b[0])), nil
}

func (Binary) String() string { return "binary" }
func (Binary) width() int     { return 1 }

// Hex renders one byte as 0xhh and longer input as bare lowercase hex.
// The report relies on that asymmetry.
type Hex struct{}

func (Hex) Convert(b []byte) (Value, error) {
	if len(b) == 1 {
		return Text(hexByte(b[0])), nil
	}
	return Text(hex.EncodeToString(b)), nil
}

func (Hex) String() string { return "hex" }
func (Hex) width() int     { return 0 }

func hexByte(b byte) string {
	return fmt.Sprintf("0x%02x", b)
}

func decodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
