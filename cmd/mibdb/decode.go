package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mibdb/internal/correlate"
	"github.com/samcharles93/mibdb/internal/digest"
	"github.com/samcharles93/mibdb/internal/eeprom"
	"github.com/samcharles93/mibdb/internal/ifs"
	"github.com/samcharles93/mibdb/internal/logger"
	"github.com/samcharles93/mibdb/internal/source"
	"github.com/samcharles93/mibdb/pkg/record"
)

const (
	kindAuto   = "auto"
	kindEEPROM = "eeprom"
	kindIFS    = "ifs"
)

type decodedFile struct {
	Path   string         `json:"path"`
	Kind   string         `json:"kind"`
	Size   int64          `json:"size"`
	Fields *record.Record `json:"fields"`
}

func decodeCmd() *cli.Command {
	var (
		kind   string
		format string
	)

	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode an EEPROM dump or partition header and print its fields",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "record kind (auto, eeprom, ifs)",
				Value:       kindAuto,
				Destination: &kind,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (table, json)",
				Value:       "table",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			switch kind {
			case kindAuto, kindEEPROM, kindIFS:
			default:
				return cli.Exit(fmt.Sprintf("error: unknown kind %q", kind), 1)
			}
			if format != "table" && format != "json" {
				return cli.Exit(fmt.Sprintf("error: unknown format %q", format), 1)
			}
			if cmd.Args().Len() == 0 {
				return cli.Exit("error: no input files", 1)
			}

			log := logger.FromContext(ctx)
			out := make([]decodedFile, 0, cmd.Args().Len())
			for _, path := range cmd.Args().Slice() {
				df, err := decodeFile(path, kind)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %s: %v", path, err), 1)
				}
				log.Debug("decoded", "path", path, "kind", df.Kind, "fields", df.Fields.Len())
				out = append(out, df)
			}

			w := outWriter(cmd)
			if format == "json" {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				_, err = w.Write(append(data, '\n'))
				return err
			}
			for i, df := range out {
				if i > 0 {
					_, _ = fmt.Fprintln(w)
				}
				printTable(w, df)
			}
			return nil
		},
	}
}

func decodeFile(path, kind string) (decodedFile, error) {
	src, err := source.Open(path, eeprom.Size)
	if err != nil {
		return decodedFile{}, err
	}
	defer func() { _ = src.Close() }()

	df := decodedFile{Path: path, Kind: kind, Size: src.Size()}
	if kind == kindAuto {
		df.Kind = detectKind(src)
	}

	switch df.Kind {
	case kindEEPROM:
		df.Fields, err = eeprom.Decode(src)
	case kindIFS:
		df.Fields, err = ifs.Decode(src, "")
		if err == nil {
			var sum string
			if sum, err = digest.File(path, digest.DefaultBufferSize); err == nil {
				df.Fields.SetText(correlate.ColPartitionSHA1, sum)
			}
		}
	default:
		err = fmt.Errorf("unrecognised file (%s); pass --kind", humanize.IBytes(uint64(src.Size())))
	}
	return df, err
}

// detectKind returns kindEEPROM for dumps of the exact EEPROM size and
// kindIFS for files carrying the IFS magic and marker. Anything else is "".
func detectKind(src *source.File) string {
	if src.Size() == eeprom.Size {
		return kindEEPROM
	}
	if hdr, err := ifs.Decode(src, ""); err == nil && ifs.Identify(hdr, "") {
		return kindIFS
	}
	return ""
}

func printTable(w io.Writer, df decodedFile) {
	_, _ = fmt.Fprintf(w, "%s (%s, %s)\n", df.Path, df.Kind, humanize.IBytes(uint64(df.Size)))
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Field", "Value"})
	tbl.SetAutoWrapText(false)
	for _, k := range df.Fields.Keys() {
		tbl.Append([]string{k, df.Fields.String(k)})
	}
	tbl.Render()
}
