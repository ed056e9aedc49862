// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/poolkit/lib/config"
)

// ConfigParams is embedded in every command's parameter struct. It adds
// the --config and --log-level flags and loads the configuration they
// select.
type ConfigParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $POOLKIT_CONFIG, then built-in defaults)"`
	LogLevel   string `json:"-" flag:"log-level" desc:"override log.level: debug, info, warn, error"`
}

// LoadConfig loads and validates the selected configuration.
func (p *ConfigParams) LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if p.ConfigPath != "" {
		cfg, err = config.LoadFile(p.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Setup loads the configuration and builds the command logger scoped
// to command.
func (p *ConfigParams) Setup(command string) (*config.Config, *slog.Logger, error) {
	cfg, err := p.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	return cfg, NewCommandLogger(level).With("command", command), nil
}
