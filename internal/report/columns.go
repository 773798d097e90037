package report

import (
	"github.com/samcharles93/mibdb/internal/correlate"
	"github.com/samcharles93/mibdb/internal/eeprom"
	"github.com/samcharles93/mibdb/internal/ifs"
)

// DefaultColumns is the report layout used when the config does not list
// columns.
var DefaultColumns = defaultColumns()

func defaultColumns() []string {
	cols := []string{
		correlate.ColBackup,
		eeprom.FieldPN1,
		correlate.ColPNModel,
		correlate.ColPNIdent,
		correlate.ColPNIndex,
		eeprom.FieldPN2,
		"Hardware Number",
		"Variant2",
		eeprom.FieldTrain,
		correlate.ColTrainHeader,
		correlate.ColTrainBrand,
		correlate.ColTrainRegion,
		"MU",
		"Unit Type",
		"Unit Type Hex",
		"Unit class",
		eeprom.FieldFeatureByte,
	}
	cols = append(cols, eeprom.FeatureBits...)
	cols = append(cols,
		"Region",
		"Region Hex",
		"Brand",
		"Brand Hex",
		"Platform",
		"Platform Hex",
		eeprom.FieldLongCoding,
		eeprom.FieldModelID,
		"byte_3_Country_Navigation",
		"External Sound",
		"byte_17_Skinning",
		"byte_18_Screenings",
		eeprom.FieldDatasetNumber,
		ifs.FieldMagic,
		ifs.FieldChecksum,
		ifs.FieldMarker,
		correlate.ColPartitionSHA1,
	)
	return append(cols, correlate.PatchColumns...)
}
