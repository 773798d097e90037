package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("header\n0x0000\tDE AD\n0x0002\tBE EF\n"))
	writeFile(t, filepath.Join(dir, "sub", "b.TXT"), []byte("0x0000\t01 02\n"))
	writeFile(t, filepath.Join(dir, "ignored.bin"), []byte{0xff})

	out, _, err := runApp(t, "", "convert", dir)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if strings.Count(out, "->") != 2 {
		t.Fatalf("expected two conversions, got:\n%s", out)
	}

	got, err := os.ReadFile(filepath.Join(dir, "a.bin"))
	if err != nil {
		t.Fatalf("read a.bin: %v", err)
	}
	if !bytes.Equal(got, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("a.bin: got % x", got)
	}
	got, err = os.ReadFile(filepath.Join(dir, "sub", "b.bin"))
	if err != nil {
		t.Fatalf("read b.bin: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02}) {
		t.Fatalf("b.bin: got % x", got)
	}
}

func TestConvertFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	writeFile(t, bad, []byte("0x0000\tZZ\n"))

	if _, _, err := runApp(t, "", "convert", bad); err == nil {
		t.Fatal("expected error for undecodable dump")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.bin")); !os.IsNotExist(err) {
		t.Fatalf("partial output should be removed, stat err = %v", err)
	}
	if _, _, err := runApp(t, "", "convert", t.TempDir()); err == nil {
		t.Fatal("expected error for a directory with no dumps")
	}
}

func TestConvertRefusesBinInput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dump.bin")
	orig := []byte("0x0000\tAA BB CC\n")
	writeFile(t, path, orig)

	if _, _, err := runApp(t, "", "convert", path); err == nil {
		t.Fatal("expected error when the output would replace the input")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, orig) {
		t.Fatalf("input modified, now %q", got)
	}
}
