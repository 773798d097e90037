package correlate

import "testing"

func TestSplitTrain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Train
	}{
		{"HDR_VW_EU_V1", Train{"HDR", "VW", "EU"}},
		{"MHI2_VW_ER_P4364_X_Y", Train{"MHI2", "VW", "ER"}},
		{"HDR_VW", Train{"HDR", "VW", ""}},
		{"HDR", Train{"HDR", "", ""}},
		{"", Train{}},
		{" HDR_AU_US ", Train{"HDR", "AU", "US"}},
	}
	for _, tc := range tests {
		if got := SplitTrain(tc.in); got != tc.want {
			t.Errorf("SplitTrain(%q): got %+v want %+v", tc.in, got, tc.want)
		}
	}
}

func TestSplitPartNumber(t *testing.T) {
	t.Parallel()

	for _, pn := range []string{"5G0035878A", "5G0035878AB", "3Q0035824C   x"} {
		got := SplitPartNumber(pn)
		if got.Model+got.Ident+got.Index != pn[:10] {
			t.Fatalf("%q: segments %+v do not rebuild first 10 chars", pn, got)
		}
		if len(got.Model) != 6 || len(got.Ident) != 3 || len(got.Index) != 1 {
			t.Fatalf("%q: wrong widths %+v", pn, got)
		}
	}

	short := []struct {
		in   string
		want PartNumber
	}{
		{"5G0035878", PartNumber{"5G0035", "878", ""}},
		{"5G00", PartNumber{"5G00", "", ""}},
		{"", PartNumber{}},
	}
	for _, tc := range short {
		if got := SplitPartNumber(tc.in); got != tc.want {
			t.Errorf("SplitPartNumber(%q): got %+v want %+v", tc.in, got, tc.want)
		}
	}
}
