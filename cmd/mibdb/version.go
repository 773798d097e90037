package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/mibdb/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			w := outWriter(cmd)
			_, _ = fmt.Fprintf(w, "version:    %s\n", info.Version)
			if info.Commit != "" {
				_, _ = fmt.Fprintf(w, "commit:     %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				_, _ = fmt.Fprintf(w, "build time: %s\n", info.BuildTime)
			}
			if info.GoVersion != "" {
				_, _ = fmt.Fprintf(w, "go:         %s\n", info.GoVersion)
			}
			return nil
		},
	}
}
