package correlate

import "strings"

const trainSep = "_"

// Train is a train identifier split into its leading tokens.
type Train struct {
	Header string
	Brand  string
	Region string
}

// SplitTrain splits s on "_" as header, brand, region. Version tokens after
// the region are ignored and missing tokens are empty.
func SplitTrain(s string) Train {
	toks := strings.SplitN(strings.TrimSpace(s), trainSep, 4)
	at := func(i int) string {
		if i < len(toks) {
			return toks[i]
		}
		return ""
	}
	return Train{Header: at(0), Brand: at(1), Region: at(2)}
}

// PartNumber is a part number split into fixed-width segments.
type PartNumber struct {
	Model string // characters 1-6
	Ident string // characters 7-9
	Index string // character 10
}

// SplitPartNumber slices pn into its segments. Short input yields short or
// empty segments, never an error.
func SplitPartNumber(pn string) PartNumber {
	r := []rune(pn)
	seg := func(from, to int) string {
		if from >= len(r) {
			return ""
		}
		return string(r[from:min(to, len(r))])
	}
	return PartNumber{Model: seg(0, 6), Ident: seg(6, 9), Index: seg(9, 10)}
}

func normalizeTrain(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
