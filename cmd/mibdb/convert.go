package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mibdb/internal/eeprom"
	"github.com/samcharles93/mibdb/internal/hexdump"
	"github.com/samcharles93/mibdb/internal/logger"
)

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert hex text EEPROM dumps to binary (<name>.bin next to each .txt)",
		ArgsUsage: "<file or directory>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("error: no input files", 1)
			}
			log := logger.FromContext(ctx)

			var inputs []string
			for _, arg := range cmd.Args().Slice() {
				found, err := textDumps(arg)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				inputs = append(inputs, found...)
			}
			if len(inputs) == 0 {
				return cli.Exit("error: no .txt dumps found", 1)
			}

			w := outWriter(cmd)
			failed := 0
			for _, in := range inputs {
				if err := ctx.Err(); err != nil {
					return err
				}
				out, n, err := hexdump.ConvertFile(in)
				if err != nil {
					failed++
					log.Error("convert failed", "path", in, "err", err)
					continue
				}
				if n != eeprom.Size {
					log.Warn("unexpected dump size", "path", out, "size", humanize.IBytes(uint64(n)),
						"want", humanize.IBytes(eeprom.Size))
				}
				log.Debug("converted", "path", in, "output", out, "bytes", n)
				_, _ = fmt.Fprintf(w, "%s -> %s (%s)\n", in, out, humanize.IBytes(uint64(n)))
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("error: %d of %d conversions failed", failed, len(inputs)), 1)
			}
			return nil
		},
	}
}

// textDumps returns path itself when it is a file, or every .txt file below
// it in lexical order when it is a directory.
func textDumps(path string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{path}, nil
	}
	var out []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".txt") {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}
