package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/mibdb/internal/logger"
)

const (
	envConfig     = "MIBDB_CONFIG"
	envBackupsDir = "MIBDB_BACKUPS_DIR"
	envPatchesDir = "MIBDB_PATCHES_DIR"
)

// globals holds the root flags and what the root Before hook derives from them.
type globals struct {
	configPath string
	logLevel   string
	logFormat  string
	logFile    string
	debug      bool

	cfg    Config
	logOut *os.File
}

func configFlag(g *globals) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "path to config.yaml (default: user config dir/mibdb/config.yaml)",
		Sources:     cli.EnvVars(envConfig),
		Destination: &g.configPath,
	}
}

func loggingFlags(g *globals) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &g.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &g.logFormat,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "also append a plain text log to this file",
			Destination: &g.logFile,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &g.debug,
		},
	}
}

// setup loads the config file and installs the run logger in ctx.
func (g *globals) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(g.configPath)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	g.cfg = cfg
	applyLoggingConfig(cmd, cfg, g)

	level := logger.ParseLevel(g.logLevel)
	if g.debug {
		level = slog.LevelDebug
	}
	opts := logger.Options{Format: g.logFormat, Level: level}
	if g.logFile != "" {
		f, err := os.OpenFile(g.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return ctx, cli.Exit(fmt.Sprintf("error: open log file: %v", err), 1)
		}
		g.logOut = f
		opts.File = f
	}

	log, err := logger.Setup(errWriter(cmd), opts)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	log = log.With("run", uuid.NewString())
	return logger.WithContext(ctx, log), nil
}

func (g *globals) close() error {
	if g.logOut == nil {
		return nil
	}
	err := g.logOut.Close()
	g.logOut = nil
	return err
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
