// Package ifs decodes the header of an IFS firmware partition image.
package ifs

import (
	"io"

	"github.com/samcharles93/mibdb/pkg/record"
)

const (
	FieldMagic    = "CHECK1"
	FieldChecksum = "ifs_header_checksum"
	FieldMarker   = "CHECK2"
)

// Magic is the rendered CHECK1 value of an IFS image.
const Magic = "eb7e"

// Marker is the CHECK2 string of the ifs-root-stage2 partition.
const Marker = "/bin/flashunlock"

// PatchSuffix namespaces patch header fields when merged into a backup row.
const PatchSuffix = "_patch"

// Layout is the header table with no key suffix.
var Layout = record.MustLayout(
	record.Field{Name: FieldMagic, Offset: 0x00, Length: 2, Conv: record.Hex{}},
	record.Field{Name: FieldChecksum, Offset: 0x24, Length: 4, Conv: record.Hex{}},
	record.Field{Name: FieldMarker, Offset: 0x140, Length: 16, Conv: record.StringTrimmed{}},
)

// Decode reads the header from src, appending suffix to every key.
func Decode(src io.ReaderAt, suffix string) (*record.Record, error) {
	l := Layout
	if suffix != "" {
		l = Layout.WithSuffix(suffix)
	}
	return record.Decode(src, l)
}

// Identify reports whether rec, decoded with suffix, carries both the IFS
// magic and the stage2 marker.
func Identify(rec *record.Record, suffix string) bool {
	return rec.String(FieldMagic+suffix) == Magic && rec.String(FieldMarker+suffix) == Marker
}
