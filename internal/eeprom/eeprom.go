// Package eeprom holds the field table for the unit's 8 KiB configuration
// EEPROM dump.
package eeprom

import (
	"io"

	"github.com/samcharles93/mibdb/pkg/record"
)

// Size is the expected dump size. Other sizes are decoded anyway.
const Size = 8192

// Field names used outside this package.
const (
	FieldPN1           = "PN1"
	FieldPN2           = "PN2"
	FieldTrain         = "Train"
	FieldFeatureByte   = "Feature byte"
	FieldLongCoding    = "Long Coding LC"
	FieldModelID       = "Model ID"
	FieldDatasetNumber = "Dataset Number"
)

const (
	offFeatures   = 0xDF
	offLongCoding = 0xF1
)

// FeatureBits lists the flag fields packed into the feature byte, by bit position.
var FeatureBits = []string{
	"Feat:Tel",
	"Feat:NAV",
	"Feat:DAB",
	"Feat:Sirius",
	"Feat:LTE",
	"Feat:2DNAv",
	"Feat:MMI Radio",
}

// Layout is the configuration record table.
var Layout = record.MustLayout(fields()...)

func fields() []record.Field {
	fs := []record.Field{
		{Name: FieldPN1, Offset: 0x80, Length: 10, Conv: record.StringTrimmed{}},
		{Name: FieldPN2, Offset: 0x8B, Length: 10, Conv: record.StringTrimmed{}},
		{Name: "Hardware Number", Offset: 0x96, Length: 3, Conv: record.Plain{}},
		{Name: "Variant2", Offset: 0xBA, Length: 13, Conv: record.StringTrimmed{}},
		{Name: FieldTrain, Offset: 0x3A0, Length: 19, Conv: record.StringTrimmed{}},
		{Name: "MU", Offset: 0x3B9, Length: 4, Conv: record.Plain{}},
		{Name: "Unit Type", Offset: 0xDD, Length: 1, Conv: record.Lookup{Table: unitTypes}},
		{Name: "Unit Type Hex", Offset: 0xDD, Length: 1, Conv: record.Hex{}},
		{Name: "Unit class", Offset: 0xDE, Length: 1, Conv: record.Lookup{Table: unitClasses}},
		{Name: FieldFeatureByte, Offset: offFeatures, Length: 1, Conv: record.Binary{}},
	}
	for pos, name := range FeatureBits {
		fs = append(fs, record.Field{Name: name, Offset: offFeatures, Length: 1, Conv: record.Bit{Pos: uint(pos)}})
	}
	return append(fs,
		record.Field{Name: "Region", Offset: 0xE0, Length: 1, Conv: record.Lookup{Table: regions}},
		record.Field{Name: "Region Hex", Offset: 0xE0, Length: 1, Conv: record.Hex{}},
		record.Field{Name: "Brand", Offset: 0xE1, Length: 1, Conv: record.Lookup{Table: brands}},
		record.Field{Name: "Brand Hex", Offset: 0xE1, Length: 1, Conv: record.Hex{}},
		record.Field{Name: "Platform", Offset: 0xE2, Length: 1, Conv: record.Lookup{Table: platforms}},
		record.Field{Name: "Platform Hex", Offset: 0xE2, Length: 1, Conv: record.Hex{}},
		// Long coding and values re-read from inside it.
		record.Field{Name: FieldLongCoding, Offset: offLongCoding, Length: 25, Conv: record.Hex{}},
		record.Field{Name: FieldModelID, Offset: offLongCoding, Length: 3, Conv: record.Hex{}},
		record.Field{Name: "byte_3_Country_Navigation", Offset: offLongCoding + 3, Length: 1, Conv: record.Hex{}},
		record.Field{Name: "External Sound", Offset: offLongCoding + 11, Length: 1, Conv: record.Hex{}},
		record.Field{Name: "byte_17_Skinning", Offset: offLongCoding + 17, Length: 1, Conv: record.Hex{}},
		record.Field{Name: "byte_18_Screenings", Offset: offLongCoding + 18, Length: 1, Conv: record.Hex{}},
		record.Field{Name: FieldDatasetNumber, Offset: 0x12E, Length: 15, Conv: record.Plain{}},
	)
}

// Decode reads a configuration record from src.
func Decode(src io.ReaderAt) (*record.Record, error) {
	return record.Decode(src, Layout)
}
