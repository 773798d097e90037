package eeprom

import (
	"errors"
	"strconv"
	"testing"

	"github.com/samcharles93/mibdb/pkg/record"
)

func put(buf []byte, off int, s string) {
	copy(buf[off:], s)
}

func goldenDump() []byte {
	buf := make([]byte, Size)
	put(buf, 0x80, "5G0035878A")
	put(buf, 0x8B, " 5G0035878 ")
	put(buf, 0x96, "H41")
	put(buf, 0xBA, "MIB2 HIGH    ")
	put(buf, 0x3A0, "MHI2_VW_ER_P4364   ")
	put(buf, 0x3B9, "MU01")
	buf[0xDD] = 0x04 // FM2
	buf[0xDE] = 0x02 // not in table
	buf[0xDF] = 0b0101_0011
	buf[0xE0] = 0x02 // EU
	buf[0xE1] = 0x01 // VW
	buf[0xE2] = 0x7f // unknown platform
	for i := 0; i < 25; i++ {
		buf[0xF1+i] = byte(0x10 + i)
	}
	put(buf, 0x12E, "V03959803HA    ")
	return buf
}

func TestDecodeGoldenDump(t *testing.T) {
	t.Parallel()

	rec, err := record.DecodeBytes(goldenDump(), Layout)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]string{
		"PN1":                       "5G0035878A",
		"PN2":                       "5G0035878",
		"Hardware Number":           "H41",
		"Variant2":                  "MIB2 HIGH",
		"Train":                     "MHI2_VW_ER_P4364",
		"MU":                        "MU01",
		"Unit Type":                 "FM2",
		"Unit Type Hex":             "0x04",
		"Unit class":                "0x02",
		"Feature byte":              "01010011",
		"Feat:Tel":                  "1",
		"Feat:NAV":                  "1",
		"Feat:DAB":                  "0",
		"Feat:Sirius":               "0",
		"Feat:LTE":                  "1",
		"Feat:2DNAv":                "0",
		"Feat:MMI Radio":            "1",
		"Region":                    "EU",
		"Region Hex":                "0x02",
		"Brand":                     "VW",
		"Brand Hex":                 "0x01",
		"Platform":                  "0x7f",
		"Platform Hex":              "0x7f",
		"Long Coding LC":            "101112131415161718191a1b1c1d1e1f2021222324252627" + "28",
		"Model ID":                  "101112",
		"byte_3_Country_Navigation": "0x13",
		"External Sound":            "0x1b",
		"byte_17_Skinning":          "0x21",
		"byte_18_Screenings":        "0x22",
		"Dataset Number":            "V03959803HA    ",
	}
	if rec.Len() != len(want) {
		t.Fatalf("field count: got %d want %d (%v)", rec.Len(), len(want), rec.Keys())
	}
	for k, v := range want {
		if got := rec.String(k); got != v {
			t.Errorf("%s: got %q want %q", k, got, v)
		}
	}
	if rec.Keys()[0] != "PN1" || rec.Keys()[rec.Len()-1] != "Dataset Number" {
		t.Fatalf("declaration order lost: %v", rec.Keys())
	}
}

func TestFeatureBitsAgreeWithFeatureByte(t *testing.T) {
	t.Parallel()

	for _, b := range []byte{0x00, 0x7f, 0x80, 0xa5, 0x5a} {
		buf := goldenDump()
		buf[0xDF] = b
		rec, err := record.DecodeBytes(buf, Layout)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		bin := rec.String(FieldFeatureByte)
		for pos, name := range FeatureBits {
			if got, want := rec.String(name), string(bin[7-pos]); got != want {
				t.Fatalf("byte %08b %s: got %s, feature byte says %s", b, name, got, want)
			}
			v, _ := rec.Get(name)
			if n, ok := v.Int(); !ok || n != int(b>>pos)&1 {
				t.Fatalf("byte %08b %s: flag value %v", b, name, v)
			}
		}
	}
}

func TestDecodeShortDump(t *testing.T) {
	t.Parallel()

	_, err := record.DecodeBytes(goldenDump()[:0x200], Layout)
	var terr *record.TruncatedSourceError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TruncatedSourceError, got %v", err)
	}
	if terr.Field != FieldTrain {
		t.Fatalf("expected truncation at %s, got %s", FieldTrain, terr.Field)
	}
}

func TestLayoutFitsInDump(t *testing.T) {
	t.Parallel()

	if ext := Layout.Extent(); ext > Size {
		t.Fatalf("layout extent %s exceeds dump size", strconv.FormatInt(ext, 16))
	}
}
