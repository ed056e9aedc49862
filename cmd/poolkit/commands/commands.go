// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete poolkit command tree.
package commands

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	backupcmd "github.com/bureau-foundation/poolkit/cmd/poolkit/backup"
	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	poolcmd "github.com/bureau-foundation/poolkit/cmd/poolkit/pool"
	"github.com/bureau-foundation/poolkit/lib/config"
	"github.com/bureau-foundation/poolkit/lib/version"
)

// Root builds and returns the poolkit command tree.
func Root() *cli.Command {
	subcommands := poolcmd.Commands()
	subcommands = append(subcommands,
		backupcmd.Command(),
		configCommand(),
		versionCommand(),
	)

	return &cli.Command{
		Name: "poolkit",
		Description: `poolkit: inspect and edit XCOM 2 character pool files.

Pools are decoded into their full property tree and written back byte
for byte, so fields poolkit does not know about (including those added
by mods) survive every edit. Pool arguments are file paths or names
resolved against the configured pool directory.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "List the soldiers in a pool",
				Command:     "poolkit list Importable",
			},
			{
				Description: "Check that a pool survives a decode/encode round trip",
				Command:     "poolkit verify Importable",
			},
			{
				Description: "Give the first soldier a new nickname",
				Command:     "poolkit set Importable 0 nickname=\"'Bradford'\"",
			},
		},
	}
}

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Args:    cli.NoArgs,
		Run: func(args []string) error {
			return runVersion(os.Stdout, params.JSONOutput)
		},
	}
}

func runVersion(w io.Writer, output cli.JSONOutput) error {
	if done, err := output.EmitJSON(w, version.Current()); done {
		return err
	}
	_, err := fmt.Fprintf(w, "poolkit %s\n", version.Full())
	return err
}

type configParams struct {
	cli.ConfigParams
}

func configCommand() *cli.Command {
	var params configParams

	return &cli.Command{
		Name:    "config",
		Summary: "Print the effective configuration",
		Description: `Print the configuration poolkit would use, as YAML, after defaults
are applied and variables are expanded. The output is a valid
configuration file.`,
		Usage:  "poolkit config [flags]",
		Params: func() any { return &params },
		Args:   cli.NoArgs,
		Run: func(args []string) error {
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			return writeConfig(os.Stdout, cfg)
		},
	}
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return encoder.Close()
}
