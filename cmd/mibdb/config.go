package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the mibdb configuration file (~/.config/mibdb/config.yaml).
// Numeric fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	BackupsDir string `yaml:"backups_dir"`
	PatchesDir string `yaml:"patches_dir"`

	// Report
	Output    string   `yaml:"output"`
	Format    string   `yaml:"format"`
	Separator *string  `yaml:"separator"`
	Columns   []string `yaml:"columns"`

	// Scan
	EEPROMGlob    string `yaml:"eeprom_glob"`
	PartitionGlob string `yaml:"partition_glob"`
	PatchGlob     string `yaml:"patch_glob"`
	HashBuffer    *int   `yaml:"hash_buffer"`
	Jobs          *int   `yaml:"jobs"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mibdb", "config.yaml")
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields a zero Config; a missing
// explicit file or malformed YAML is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyLoggingConfig applies config file defaults to the root logging flags
// when the corresponding CLI flag was not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config, g *globals) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		g.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		g.logFormat = cfg.LogFormat
	}
	if cfg.LogFile != "" && !c.IsSet("log-file") {
		g.logFile = cfg.LogFile
	}
}

// applyBuildConfig applies config file defaults to build command settings.
func applyBuildConfig(c *cli.Command, cfg Config, s *buildSettings) {
	if cfg.BackupsDir != "" && !c.IsSet("backups") {
		s.backupsDir = cfg.BackupsDir
	}
	if cfg.PatchesDir != "" && !c.IsSet("patches") {
		s.patchesDir = cfg.PatchesDir
	}
	if cfg.Output != "" && !c.IsSet("output") {
		s.output = cfg.Output
	}
	if cfg.Format != "" && !c.IsSet("format") {
		s.format = cfg.Format
	}
	if cfg.Separator != nil && !c.IsSet("separator") {
		s.separator = *cfg.Separator
	}
	if len(cfg.Columns) > 0 {
		s.columns = cfg.Columns
	}
	if cfg.EEPROMGlob != "" && !c.IsSet("eeprom-glob") {
		s.eepromGlob = cfg.EEPROMGlob
	}
	if cfg.PartitionGlob != "" && !c.IsSet("partition-glob") {
		s.partitionGlob = cfg.PartitionGlob
	}
	if cfg.PatchGlob != "" && !c.IsSet("patch-glob") {
		s.patchGlob = cfg.PatchGlob
	}
	if cfg.HashBuffer != nil && !c.IsSet("hash-buffer") {
		s.hashBuffer = *cfg.HashBuffer
	}
	if cfg.Jobs != nil && !c.IsSet("jobs") {
		s.jobs = *cfg.Jobs
	}
}
