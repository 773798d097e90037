package scan

import (
	"path/filepath"
	"strconv"
	"strings"
)

const patchTokens = 6

// PatchName holds the tokens of a patch file name.
type PatchName struct {
	Unit     string // train the patch applies to
	Fixed    [3]string
	Offset   string
	Checksum string
}

// ParsePatchName splits a patch file name (extension ignored) into its six
// dash-separated tokens.
func ParsePatchName(filename string) (PatchName, error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	toks := strings.Split(stem, "-")
	if len(toks) != patchTokens {
		return PatchName{}, &MalformedFilenameError{Name: base, Tokens: len(toks)}
	}
	for i, tok := range toks {
		if strings.TrimSpace(tok) == "" {
			return PatchName{}, &MalformedFilenameError{Name: base, Tokens: len(toks), Reason: "empty token at position " + strconv.Itoa(i+1)}
		}
	}
	return PatchName{
		Unit:     toks[0],
		Fixed:    [3]string{toks[1], toks[2], toks[3]},
		Offset:   toks[4],
		Checksum: toks[5],
	}, nil
}
