// Package correlate joins decoded backups with the patch built for their
// train and produces one report row per backup.
package correlate

import (
	"path/filepath"
	"strings"

	"github.com/samcharles93/mibdb/internal/eeprom"
	"github.com/samcharles93/mibdb/internal/ifs"
	"github.com/samcharles93/mibdb/internal/logger"
	"github.com/samcharles93/mibdb/internal/scan"
	"github.com/samcharles93/mibdb/pkg/record"
)

// Derived and joined column names.
const (
	ColBackup        = "Backup"
	ColPartitionSHA1 = "ifs SHA1"
	ColTrainHeader   = "Train Header"
	ColTrainBrand    = "Train Brand"
	ColTrainRegion   = "Train Region"
	ColPNModel       = "PN Model"
	ColPNIdent       = "PN Ident"
	ColPNIndex       = "PN Index"

	ColPatch               = "Patch"
	ColPatchSHA1           = "Patch SHA1"
	ColPatchHeaderChecksum = ifs.FieldChecksum + ifs.PatchSuffix
	ColPatchOffset         = "Patch Offset"
	ColPatchChecksum       = "Patch Checksum"
)

// PatchColumns are only filled when exactly one patch matches.
var PatchColumns = []string{
	ColPatch,
	ColPatchSHA1,
	ColPatchHeaderChecksum,
	ColPatchOffset,
	ColPatchChecksum,
}

// Result holds one row per backup, in backup order, and every correlation
// warning raised while building them.
type Result struct {
	Rows     []*record.Record
	Warnings []error
	Matched  int
}

// Assemble builds the joined rows. Zero or several matching patches leave
// the patch columns empty and add a warning; neither stops the run.
func Assemble(backups []scan.Backup, patches []scan.Patch, log logger.Logger) *Result {
	if log == nil {
		log = logger.Discard()
	}
	res := &Result{Rows: make([]*record.Record, 0, len(backups))}

	for _, b := range backups {
		row := baseRow(b)
		train := strings.TrimSpace(b.Config.String(eeprom.FieldTrain))
		blog := log.With("backup", b.Name, "train", train)

		matches := Candidates(train, patches)
		switch len(matches) {
		case 0:
			res.Warnings = append(res.Warnings, &NoCorrelationWarning{Backup: b.Name, Train: train})
			blog.Warn("no matching patch")
		case 1:
			p := matches[0]
			mergePatch(row, p)
			res.Matched++
			blog.Info("matched patch", "patch", filepath.Base(p.Path), "patch_train", p.Train(),
				"exact", normalizeTrain(p.Train()) == normalizeTrain(train))
		default:
			names := make([]string, len(matches))
			for i, p := range matches {
				names[i] = p.Path
			}
			res.Warnings = append(res.Warnings, &AmbiguousCorrelationWarning{Backup: b.Name, Train: train, Candidates: names})
			blog.Warn("ambiguous patch match, resolve manually", "candidates", strings.Join(names, ", "))
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

// Candidates returns every patch whose train is a case-insensitive prefix of
// train. Patches without a train never match.
func Candidates(train string, patches []scan.Patch) []scan.Patch {
	want := normalizeTrain(train)
	var out []scan.Patch
	for _, p := range patches {
		pt := normalizeTrain(p.Train())
		if pt == "" {
			continue
		}
		if strings.HasPrefix(want, pt) {
			out = append(out, p)
		}
	}
	return out
}

func baseRow(b scan.Backup) *record.Record {
	row := record.New()
	row.SetText(ColBackup, b.Name)
	row.Merge(b.Config)

	t := SplitTrain(b.Config.String(eeprom.FieldTrain))
	row.SetText(ColTrainHeader, t.Header)
	row.SetText(ColTrainBrand, t.Brand)
	row.SetText(ColTrainRegion, t.Region)

	pn := SplitPartNumber(b.Config.String(eeprom.FieldPN1))
	row.SetText(ColPNModel, pn.Model)
	row.SetText(ColPNIdent, pn.Ident)
	row.SetText(ColPNIndex, pn.Index)

	row.Merge(b.Header)
	if b.PartitionSHA1 != "" {
		row.SetText(ColPartitionSHA1, b.PartitionSHA1)
	}
	return row
}

func mergePatch(row *record.Record, p scan.Patch) {
	row.SetText(ColPatch, filepath.Base(p.Path))
	row.SetText(ColPatchSHA1, p.SHA1)
	row.SetText(ColPatchHeaderChecksum, p.Header.String(ColPatchHeaderChecksum))
	row.SetText(ColPatchOffset, p.Name.Offset)
	row.SetText(ColPatchChecksum, p.Name.Checksum)
}
