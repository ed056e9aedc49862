// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/poolkit/lib/backup"
)

// EnvironmentVariable names the config file when --config is not given.
const EnvironmentVariable = "POOLKIT_CONFIG"

// Config is the poolkit configuration.
type Config struct {
	Paths  PathsConfig  `yaml:"paths"`
	Backup BackupConfig `yaml:"backup"`
	Log    LogConfig    `yaml:"log"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for poolkit data.
	Root string `yaml:"root"`

	// Pools is the directory pool names are resolved against when a
	// command argument is not an existing file. Usually the game's
	// CharacterPool directory.
	Pools string `yaml:"pools"`

	// Backups is the backup store directory.
	Backups string `yaml:"backups"`
}

// BackupConfig controls the backups taken before a pool is overwritten.
type BackupConfig struct {
	Enabled bool `yaml:"enabled"`

	// Compression is one of none, lz4, zstd.
	Compression string `yaml:"compression"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
// Path fields are already expanded.
func Default() *Config {
	cfg := defaults()
	cfg.expandVariables()
	return cfg
}

func defaults() *Config {
	return &Config{
		Paths: PathsConfig{
			Root:    "${HOME}/.local/share/poolkit",
			Pools:   "${POOLKIT_ROOT}/pools",
			Backups: "${POOLKIT_ROOT}/backups",
		},
		Backup: BackupConfig{
			Enabled:     true,
			Compression: "zstd",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the file named by POOLKIT_CONFIG, or returns [Default]
// when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, merged over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
// Root is expanded first so the others can refer to ${POOLKIT_ROOT}.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["POOLKIT_ROOT"] = c.Paths.Root

	c.Paths.Pools = expandVars(c.Paths.Pools, vars)
	c.Paths.Backups = expandVars(c.Paths.Backups, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Root == "" {
		errs = append(errs, errors.New("paths.root is required"))
	}
	if c.Backup.Enabled && c.Paths.Backups == "" {
		errs = append(errs, errors.New("paths.backups is required when backup.enabled is set"))
	}
	if _, err := backup.ParseCompression(c.Backup.Compression); err != nil {
		errs = append(errs, fmt.Errorf("backup.compression: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel parses log.level. An empty level means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToLower(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// BackupStore returns the backup store described by the configuration,
// or nil when backups are disabled.
func (c *Config) BackupStore() (*backup.Store, error) {
	if !c.Backup.Enabled {
		return nil, nil
	}
	compression, err := backup.ParseCompression(c.Backup.Compression)
	if err != nil {
		return nil, fmt.Errorf("backup.compression: %w", err)
	}
	return &backup.Store{Dir: c.Paths.Backups, Compression: compression}, nil
}

// ResolvePool maps a command-line pool argument to a file path. An
// argument naming an existing file, or containing a path separator, is
// used as given. Otherwise it is looked up in paths.pools, with ".bin"
// appended when the name has no extension.
func (c *Config) ResolvePool(argument string) string {
	if _, err := os.Stat(argument); err == nil {
		return argument
	}
	if strings.ContainsRune(argument, filepath.Separator) || c.Paths.Pools == "" {
		return argument
	}
	name := argument
	if filepath.Ext(name) == "" {
		name += ".bin"
	}
	return filepath.Join(c.Paths.Pools, name)
}

// EnsurePaths creates the configured directories.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.Root, c.Paths.Backups} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
