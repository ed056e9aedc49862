// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/charpool"
)

type copyParams struct {
	cli.ConfigParams
	NoBackup bool `json:"no_backup" flag:"no-backup" desc:"do not back up the destination pool"`
}

func copyCommand() *cli.Command {
	var params copyParams

	return &cli.Command{
		Name:    "copy",
		Summary: "Copy a character into another pool",
		Description: `Append a copy of the character at <index> in <source> to the end of
<destination>. Every property is copied, including ones poolkit does
not recognize. When the destination does not exist a new pool is
created, named after the file.`,
		Usage: "poolkit copy <source> <index> <destination> [flags]",
		Examples: []cli.Example{
			{
				Description: "Copy a soldier from a downloaded pool into the importable pool",
				Command:     "poolkit copy ~/Downloads/Squad.bin 4 Importable",
			},
		},
		Params: func() any { return &params },
		Args:   cli.ExactArgs(3),
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("copy")
			if err != nil {
				return err
			}
			destination := cfg.ResolvePool(args[2])
			target, err := newWriteTarget(cfg, destination, writeParams{NoBackup: params.NoBackup})
			if err != nil {
				return err
			}
			return runCopy(logger, cfg.ResolvePool(args[0]), args[1], target)
		},
	}
}

func runCopy(logger *slog.Logger, sourcePath, indexArgument string, target writeTarget) error {
	source, err := charpool.Open(sourcePath)
	if err != nil {
		return err
	}
	index, character, err := parseIndex(source, indexArgument)
	if err != nil {
		return err
	}

	destination, err := charpool.Open(target.Path)
	if errors.Is(err, fs.ErrNotExist) {
		name := strings.TrimSuffix(filepath.Base(target.Path), filepath.Ext(target.Path))
		destination = charpool.NewPool(name)
		logger.Info("creating pool", "path", target.Path, "name", name)
	} else if err != nil {
		return err
	}

	added := destination.Add(character.Clone())
	logger.Info("copied character",
		"name", character.DisplayName(),
		"from", sourcePath,
		"from_index", index,
		"to_index", added,
	)
	return writePool(logger, destination, target)
}
