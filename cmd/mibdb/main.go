package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mibdb/internal/version"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	g := &globals{}
	return &cli.Command{
		Name:    "mibdb",
		Usage:   "Extract EEPROM and partition header fields from MIB backups and match them to patches",
		Version: version.String(),
		Flags: append([]cli.Flag{configFlag(g)}, loggingFlags(g)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return g.setup(ctx, cmd)
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			return g.close()
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			buildCmd(g),
			decodeCmd(),
			convertCmd(),
			versionCmd(),
		},
	}
}
