// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/backup"
	"github.com/bureau-foundation/poolkit/lib/config"
	"github.com/bureau-foundation/poolkit/lib/tui"
)

// Command returns the "backup" parent command.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "backup",
		Summary: "List, take, and restore pool backups",
		Description: `Manage the backups poolkit takes before it overwrites a pool.

Backups are content-addressed: saving a file whose exact bytes are
already backed up records nothing new. Each backup is identified by
its file name or any prefix of its digest.`,
		Subcommands: []*cli.Command{
			listCommand(),
			saveCommand(),
			restoreCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List backups, newest first",
				Command:     "poolkit backup list",
			},
			{
				Description: "Restore a backup over the file it was taken from",
				Command:     "poolkit backup restore 3f2a9c",
			},
		},
	}
}

// openStore returns the configured store, failing when backups are
// disabled.
func openStore(cfg *config.Config) (*backup.Store, error) {
	store, err := cfg.BackupStore()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("backups are disabled (backup.enabled is false)")
	}
	return store, nil
}

type listParams struct {
	cli.ConfigParams
	cli.JSONOutput
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List backups, newest first",
		Usage:   "poolkit backup list [flags]",
		Params:  func() any { return &params },
		Args:    cli.NoArgs,
		Run: func(args []string) error {
			cfg, _, err := params.Setup("backup list")
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			return runList(os.Stdout, store, params.JSONOutput)
		},
	}
}

func runList(w io.Writer, store *backup.Store, output cli.JSONOutput) error {
	records, err := store.List()
	if err != nil {
		return err
	}
	if done, err := output.EmitJSON(w, records); done {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "no backups in %s\n", store.Dir)
		return err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Digest.Short(),
			record.Created.Local().Format("2006-01-02 15:04:05"),
			strconv.FormatInt(record.Size, 10),
			record.Compression.String(),
			record.Source,
		})
	}
	return tui.RenderTable(w, tui.DefaultTheme, []string{"ID", "CREATED", "SIZE", "COMPRESSION", "SOURCE"}, rows)
}

type saveParams struct {
	cli.ConfigParams
}

func saveCommand() *cli.Command {
	var params saveParams

	return &cli.Command{
		Name:    "save",
		Summary: "Back up pools now",
		Usage:   "poolkit backup save <pool>... [flags]",
		Params:  func() any { return &params },
		Args:    cli.MinimumArgs(1),
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("backup save")
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			paths := make([]string, 0, len(args))
			for _, argument := range args {
				paths = append(paths, cfg.ResolvePool(argument))
			}
			return runSave(os.Stdout, logger, store, paths)
		},
	}
}

func runSave(w io.Writer, logger *slog.Logger, store *backup.Store, paths []string) error {
	for _, path := range paths {
		record, err := store.Save(path)
		if err != nil {
			return err
		}
		logger.Info("backed up pool", "source", record.Source, "file", record.File)
		if _, err := fmt.Fprintf(w, "%s  %s\n", record.Digest.Short(), record.Source); err != nil {
			return err
		}
	}
	return nil
}

type restoreParams struct {
	cli.ConfigParams
	To string `json:"to" flag:"to" desc:"restore to this path instead of the original source"`
}

func restoreCommand() *cli.Command {
	var params restoreParams

	return &cli.Command{
		Name:    "restore",
		Summary: "Restore a backup",
		Description: `Write the content of a backup back to the file it was taken from,
or to --to. The backup is checked against its recorded digest first.
The file being replaced is itself backed up, so a restore can be
undone.`,
		Usage:  "poolkit backup restore <id> [flags]",
		Params: func() any { return &params },
		Args:   cli.ExactArgs(1),
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("backup restore")
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			return runRestore(logger, store, args[0], params.To)
		},
	}
}

func runRestore(logger *slog.Logger, store *backup.Store, id, destination string) error {
	record, err := store.Find(id)
	if err != nil {
		return err
	}
	if destination == "" {
		destination = record.Source
	}
	if _, err := os.Stat(destination); err == nil {
		previous, err := store.Save(destination)
		if err != nil {
			return fmt.Errorf("backing up %s before restore: %w", destination, err)
		}
		logger.Info("backed up pool", "source", previous.Source, "file", previous.File)
	}
	if err := store.Restore(record, destination); err != nil {
		return err
	}
	logger.Info("restored backup", "file", record.File, "destination", destination)
	return nil
}
