// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"log/slog"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/charpool"
)

type removeParams struct {
	cli.ConfigParams
	writeParams
}

func removeCommand() *cli.Command {
	var params removeParams

	return &cli.Command{
		Name:    "remove",
		Summary: "Remove a character from a pool",
		Description: `Delete the character at <index> and write the pool back. Characters
after it move down one index.`,
		Usage: "poolkit remove <pool> <index> [flags]",
		Examples: []cli.Example{
			{
				Description: "Remove the third character",
				Command:     "poolkit remove Importable 2",
			},
		},
		Params: func() any { return &params },
		Args:   cli.ExactArgs(2),
		Run: func(args []string) error {
			cfg, logger, err := params.Setup("remove")
			if err != nil {
				return err
			}
			path := cfg.ResolvePool(args[0])
			target, err := newWriteTarget(cfg, path, params.writeParams)
			if err != nil {
				return err
			}
			return runRemove(logger, path, args[1], target)
		},
	}
}

func runRemove(logger *slog.Logger, path, indexArgument string, target writeTarget) error {
	pool, err := charpool.Open(path)
	if err != nil {
		return err
	}
	index, character, err := parseIndex(pool, indexArgument)
	if err != nil {
		return err
	}
	if err := pool.Remove(index); err != nil {
		return err
	}
	logger.Info("removed character", "index", index, "name", character.DisplayName())
	return writePool(logger, pool, target)
}
