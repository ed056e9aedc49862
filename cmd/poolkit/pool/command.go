// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/backup"
	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/config"
)

// Commands returns the pool commands, in help order.
func Commands() []*cli.Command {
	return []*cli.Command{
		listCommand(),
		showCommand(),
		setCommand(),
		removeCommand(),
		copyCommand(),
		verifyCommand(),
		dumpCommand(),
		fieldsCommand(),
	}
}

// writeParams is embedded by commands that overwrite a pool.
type writeParams struct {
	Output   string `json:"output"    flag:"output,o"  desc:"write the result to this file instead of the source pool"`
	NoBackup bool   `json:"no_backup" flag:"no-backup" desc:"do not back up the file being overwritten"`
}

// writeTarget describes where an edited pool goes and whether the file
// there is backed up first. A nil Store means no backup.
type writeTarget struct {
	Path  string
	Store *backup.Store
}

func newWriteTarget(cfg *config.Config, source string, params writeParams) (writeTarget, error) {
	target := writeTarget{Path: source}
	if params.Output != "" {
		target.Path = params.Output
	}
	if params.NoBackup {
		return target, nil
	}
	store, err := cfg.BackupStore()
	if err != nil {
		return target, err
	}
	target.Store = store
	return target, nil
}

// writePool backs up the file at the target path, if there is one and
// backups are on, and then atomically replaces it with the pool.
func writePool(logger *slog.Logger, pool *charpool.Pool, target writeTarget) error {
	if target.Store != nil {
		if _, err := os.Stat(target.Path); err == nil {
			record, err := target.Store.Save(target.Path)
			if err != nil {
				return fmt.Errorf("backing up %s: %w", target.Path, err)
			}
			logger.Info("backed up pool",
				"source", target.Path,
				"backup", filepath.Join(target.Store.Dir, record.File),
				"digest", record.Digest.Short(),
			)
		}
	}
	if err := pool.Write(target.Path); err != nil {
		return err
	}
	logger.Info("wrote pool", "path", target.Path, "characters", len(pool.Characters))
	return nil
}

func parseIndex(pool *charpool.Pool, argument string) (int, *charpool.Character, error) {
	index, err := strconv.Atoi(argument)
	if err != nil {
		return 0, nil, fmt.Errorf("character index %q is not a number", argument)
	}
	character, err := pool.Character(index)
	if err != nil {
		return 0, nil, err
	}
	return index, character, nil
}
