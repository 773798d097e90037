package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mibdb/internal/correlate"
	"github.com/samcharles93/mibdb/internal/digest"
	"github.com/samcharles93/mibdb/internal/logger"
	"github.com/samcharles93/mibdb/internal/report"
	"github.com/samcharles93/mibdb/internal/scan"
)

const defaultOutput = "mib_db.txt"

type buildSettings struct {
	backupsDir    string
	patchesDir    string
	output        string
	format        string
	separator     string
	columns       []string
	eepromGlob    string
	partitionGlob string
	patchGlob     string
	hashBuffer    int
	jobs          int
}

func (s buildSettings) scanOptions() scan.Options {
	return scan.Options{
		EEPROMGlob:    s.eepromGlob,
		PartitionGlob: s.partitionGlob,
		PatchGlob:     s.patchGlob,
		HashBuffer:    s.hashBuffer,
		Jobs:          s.jobs,
	}
}

func (s buildSettings) reportOptions() report.Options {
	return report.Options{Columns: s.columns, Separator: s.separator, Format: s.format}
}

func buildCmd(g *globals) *cli.Command {
	var s buildSettings

	return &cli.Command{
		Name:  "build",
		Usage: "Decode every backup and patch, correlate them and write the report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "backups",
				Aliases:     []string{"b"},
				Usage:       "directory holding one sub-directory per backup",
				Sources:     cli.EnvVars(envBackupsDir),
				Destination: &s.backupsDir,
			},
			&cli.StringFlag{
				Name:        "patches",
				Aliases:     []string{"p"},
				Usage:       "directory holding patch files",
				Sources:     cli.EnvVars(envPatchesDir),
				Destination: &s.patchesDir,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "report file",
				Value:       defaultOutput,
				Destination: &s.output,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "report format (text, json)",
				Value:       report.FormatText,
				Destination: &s.format,
			},
			&cli.StringFlag{
				Name:        "separator",
				Usage:       "field separator for the text format",
				Value:       report.DefaultSeparator,
				Destination: &s.separator,
			},
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "concurrent decodes (1 = sequential)",
				Value:       1,
				Destination: &s.jobs,
			},
			&cli.IntFlag{
				Name:        "hash-buffer",
				Usage:       "SHA-1 read buffer size in bytes",
				Value:       digest.DefaultBufferSize,
				Destination: &s.hashBuffer,
			},
			&cli.StringFlag{Name: "eeprom-glob", Usage: "EEPROM dump file pattern", Value: scan.DefaultEEPROMGlob, Destination: &s.eepromGlob},
			&cli.StringFlag{Name: "partition-glob", Usage: "partition image file pattern", Value: scan.DefaultPartitionGlob, Destination: &s.partitionGlob},
			&cli.StringFlag{Name: "patch-glob", Usage: "patch file pattern", Value: scan.DefaultPatchGlob, Destination: &s.patchGlob},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyBuildConfig(cmd, g.cfg, &s)
			if s.backupsDir == "" {
				return cli.Exit("error: --backups is required (or set backups_dir in the config)", 1)
			}
			if s.patchesDir == "" {
				return cli.Exit("error: --patches is required (or set patches_dir in the config)", 1)
			}
			if err := checkDir(s.backupsDir); err != nil {
				return cli.Exit(fmt.Sprintf("error: backups: %v", err), 1)
			}
			if err := checkDir(s.patchesDir); err != nil {
				return cli.Exit(fmt.Sprintf("error: patches: %v", err), 1)
			}
			if err := s.scanOptions().Validate(); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := s.reportOptions().Validate(); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := checkDir(filepath.Dir(s.output)); err != nil {
				return cli.Exit(fmt.Sprintf("error: output: %v", err), 1)
			}

			sum, err := runBuild(ctx, s, logger.FromContext(ctx))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			_, _ = fmt.Fprintf(outWriter(cmd), "wrote %s (%d rows, %d matched, %d issues, %s)\n",
				s.output, sum.rows, sum.matched, sum.issues, humanize.Bytes(uint64(sum.bytes)))
			return nil
		},
	}
}

type buildSummary struct {
	rows    int
	matched int
	issues  int
	bytes   int64
}

// runBuild scans both trees, joins them and writes the report. Per-record
// problems are logged and counted; only configuration-level failures return.
func runBuild(ctx context.Context, s buildSettings, log logger.Logger) (buildSummary, error) {
	start := time.Now()
	sc := scan.New(s.scanOptions(), log.WithGroup("scan"))

	backups, err := sc.Backups(ctx, s.backupsDir)
	if err != nil {
		return buildSummary{}, err
	}
	patches, err := sc.Patches(ctx, s.patchesDir)
	if err != nil {
		return buildSummary{}, err
	}

	res := correlate.Assemble(backups.Backups, patches.Patches, log.WithGroup("correlate"))

	n, err := report.WriteFile(s.output, res.Rows, s.reportOptions())
	if err != nil {
		return buildSummary{}, err
	}

	sum := buildSummary{
		rows:    len(res.Rows),
		matched: res.Matched,
		issues:  len(backups.Issues) + len(patches.Issues) + len(res.Warnings),
		bytes:   n,
	}
	log.Info("report written",
		"path", s.output,
		"backups", len(backups.Backups),
		"patches", len(patches.Patches),
		"matched", sum.matched,
		"issues", sum.issues,
		"size", humanize.IBytes(uint64(n)),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return sum, nil
}

func checkDir(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
