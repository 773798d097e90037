// Package record decodes fixed-offset binary records.
//
// A Layout is an ordered table of Fields, each naming an offset, a length and
// a Converter. Decode walks the table against any io.ReaderAt and produces an
// insertion-ordered Record:
//
//	layout := record.MustLayout(
//	    record.Field{Name: "Magic", Offset: 0x00, Length: 2, Conv: record.Hex{}},
//	    record.Field{Name: "Flags", Offset: 0x10, Length: 1, Conv: record.Binary{}},
//	)
//	rec, err := record.Decode(f, layout)
//
// Tables are static data. Converter widths are checked when the Layout is
// built, so a mistake in a table fails at startup rather than mid-run.
package record
