package record

import (
	"errors"
	"fmt"
	"testing"
)

func TestTrimmedConverters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		conv Converter
		in   []byte
		want string
	}{
		{"bytes keeps inner space", BytesTrimmed{}, []byte("  5G0 035 \t\n"), "5G0 035"},
		{"bytes keeps nul padding", BytesTrimmed{}, []byte("AB\x00\x00"), "AB\x00\x00"},
		{"string trims both ends", StringTrimmed{}, []byte("\vMHI2_ER \r"), "MHI2_ER"},
		{"string replaces invalid utf8", StringTrimmed{}, []byte{'A', 0xff, 'B'}, "A\uFFFDB"},
		{"plain keeps whitespace", Plain{}, []byte(" H41 "), " H41 "},
		{"all whitespace", StringTrimmed{}, []byte("    "), ""},
	}

	for _, tc := range tests {
		got, err := tc.conv.Convert(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got.String() != tc.want {
			t.Errorf("%s: got %q want %q", tc.name, got.String(), tc.want)
		}
	}
}

func TestLookupUnknownCodeIsStable(t *testing.T) {
	t.Parallel()

	conv := Lookup{Table: map[byte]string{0x01: "VW"}}
	for code := 0; code < 256; code++ {
		first, err := conv.Convert([]byte{byte(code)})
		if err != nil {
			t.Fatalf("code 0x%02x: %v", code, err)
		}
		second, _ := conv.Convert([]byte{byte(code)})
		if first != second {
			t.Fatalf("code 0x%02x not stable: %q vs %q", code, first, second)
		}
		want := fmt.Sprintf("0x%02x", code)
		if code == 0x01 {
			want = "VW"
		}
		if first.String() != want {
			t.Fatalf("code 0x%02x: got %q want %q", code, first.String(), want)
		}
	}
}

func TestBitMatchesBinaryRendering(t *testing.T) {
	t.Parallel()

	for b := 0; b < 256; b++ {
		in := []byte{byte(b)}
		bin, err := Binary{}.Convert(in)
		if err != nil {
			t.Fatalf("binary 0x%02x: %v", b, err)
		}
		s := bin.String()
		if len(s) != 8 {
			t.Fatalf("binary 0x%02x: got %q, want 8 chars", b, s)
		}
		for pos := uint(0); pos < 8; pos++ {
			v, err := Bit{Pos: pos}.Convert(in)
			if err != nil {
				t.Fatalf("bit %d of 0x%02x: %v", pos, b, err)
			}
			n, ok := v.Int()
			if !ok || (n != 0 && n != 1) {
				t.Fatalf("bit %d of 0x%02x: got %v", pos, b, v)
			}
			// MSB first: bit pos sits at index 7-pos.
			if want := int(s[7-pos] - '0'); n != want {
				t.Fatalf("bit %d of 0x%02x: got %d, binary %q says %d", pos, b, n, s, want)
			}
		}
	}
}

func TestSingleByteConvertersRejectWideInput(t *testing.T) {
	t.Parallel()

	for _, conv := range []Converter{Bit{Pos: 3}, Binary{}, Lookup{}} {
		_, err := conv.Convert([]byte{1, 2})
		var werr *InvalidFieldWidthError
		if !errors.As(err, &werr) {
			t.Fatalf("%s: expected InvalidFieldWidthError, got %v", conv, err)
		}
		if werr.Want != 1 || werr.Got != 2 {
			t.Fatalf("%s: unexpected widths %+v", conv, werr)
		}
	}
}

func TestHexAsymmetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0x0a}, "0x0a"},
		{[]byte{0xff}, "0xff"},
		{[]byte{0xeb, 0x7e}, "eb7e"},
		{[]byte{0x00, 0xAB, 0xcd}, "00abcd"},
	}
	for _, tc := range tests {
		got, _ := Hex{}.Convert(tc.in)
		if got.String() != tc.want {
			t.Errorf("Hex(% x): got %q want %q", tc.in, got.String(), tc.want)
		}
	}
}

func TestValueJSON(t *testing.T) {
	t.Parallel()

	b, err := Flag(1).MarshalJSON()
	if err != nil || string(b) != "1" {
		t.Fatalf("flag json: got %s, %v", b, err)
	}
	b, err = Text(`a"b`).MarshalJSON()
	if err != nil || string(b) != `"a\"b"` {
		t.Fatalf("text json: got %s, %v", b, err)
	}
	if Flag(7).String() != "1" {
		t.Fatalf("non-zero flag should normalise to 1")
	}
}
