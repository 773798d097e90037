package record

import (
	"strconv"

	"github.com/goccy/go-json"
)

type kind uint8

const (
	kindText kind = iota
	kindBit
)

// Value is a single decoded field: either text or a flag bit.
type Value struct {
	kind kind
	text string
	bit  uint8
}

// Text wraps a string value.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// Flag wraps a 0/1 value. Any non-zero input is stored as 1.
func Flag(b uint8) Value {
	if b != 0 {
		b = 1
	}
	return Value{kind: kindBit, bit: b}
}

// IsFlag reports whether v came from a bit extraction.
func (v Value) IsFlag() bool { return v.kind == kindBit }

// Int returns the flag value. ok is false for text values.
func (v Value) Int() (int, bool) {
	if v.kind != kindBit {
		return 0, false
	}
	return int(v.bit), true
}

func (v Value) String() string {
	if v.kind == kindBit {
		return strconv.Itoa(int(v.bit))
	}
	return v.text
}

// MarshalJSON renders flags as numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == kindBit {
		return []byte(strconv.Itoa(int(v.bit))), nil
	}
	return json.Marshal(v.text)
}
