package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/samcharles93/mibdb/internal/digest"
)

func TestDecodeAutoDetect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dumpPath := filepath.Join(dir, "unit-EEProm.bin")
	partPath := filepath.Join(dir, "ifs-root-part2-0x05000000.ifs")
	writeFile(t, dumpPath, dump("5G0035878A", "MHI2_ER_VWG11_K4144"))
	writeFile(t, partPath, partition(0x11))

	out, stderr, err := runApp(t, "", "decode", "--format", "json", dumpPath, partPath)
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, stderr)
	}
	var got []struct {
		Path   string         `json:"path"`
		Kind   string         `json:"kind"`
		Size   int64          `json:"size"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %d", len(got))
	}
	if got[0].Kind != kindEEPROM || got[0].Fields["Train"] != "MHI2_ER_VWG11_K4144" {
		t.Fatalf("eeprom: got %+v", got[0])
	}
	if got[1].Kind != kindIFS || got[1].Fields["CHECK2"] != "/bin/flashunlock" {
		t.Fatalf("ifs: got %+v", got[1])
	}
	want, _ := digest.File(partPath, 0)
	if got[1].Fields["ifs SHA1"] != want {
		t.Fatalf("sha1: got %v want %s", got[1].Fields["ifs SHA1"], want)
	}
}

func TestDecodeTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.bin")
	writeFile(t, path, dump("5G0035878A", "MHI2_ER_VWG11_K4144"))

	out, _, err := runApp(t, "", "decode", "--kind", "eeprom", path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{"FIELD", "PN1", "5G0035878A", "MHI2_ER_VWG11_K4144", "8.0 KiB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestDecodeUnrecognised(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "random.bin")
	writeFile(t, path, make([]byte, 0x200))
	if _, _, err := runApp(t, "", "decode", path); err == nil {
		t.Fatal("expected error for a file that is neither kind")
	}
}
