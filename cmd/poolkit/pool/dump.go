// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/codec"
	"github.com/bureau-foundation/poolkit/lib/propbag"
)

type dumpParams struct {
	cli.ConfigParams
	Format string `json:"format" flag:"format,f" desc:"output format: json, cbor, or diag" default:"json"`
}

func dumpCommand() *cli.Command {
	var params dumpParams

	return &cli.Command{
		Name:    "dump",
		Summary: "Print the raw property tree of a file",
		Description: `Decode a file and print every property as a tree: name, type, and
value, with struct children and array headers and entries nested.
Nothing is interpreted, so this works on any file in the property bag
format, not only character pools.

A sentinel found between top-level properties is printed as null.

The cbor format writes the same tree as deterministic CBOR, suitable
for piping into other tools or comparing with cmp. The diag format
prints that CBOR in diagnostic notation (RFC 8949), a compact
one-line view of the whole tree.`,
		Usage: "poolkit dump <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Dump a pool as JSON",
				Command:     "poolkit dump Importable",
			},
			{
				Description: "Write the tree as CBOR",
				Command:     "poolkit dump Importable --format cbor > importable.cbor",
			},
		},
		Params: func() any { return &params },
		Args:   cli.ExactArgs(1),
		Run: func(args []string) error {
			cfg, _, err := params.Setup("dump")
			if err != nil {
				return err
			}
			return runDump(os.Stdout, cfg.ResolvePool(args[0]), params.Format)
		},
	}
}

func runDump(w io.Writer, path, format string) error {
	file, err := propbag.ReadFile(path)
	if err != nil {
		return err
	}
	nodes := fileNodes(file)

	switch format {
	case "", "json":
		return cli.WriteJSON(w, nodes)
	case "cbor":
		if err := codec.NewEncoder(w).Encode(nodes); err != nil {
			return fmt.Errorf("encoding tree: %w", err)
		}
		return nil
	case "diag":
		data, err := codec.Marshal(nodes)
		if err != nil {
			return fmt.Errorf("encoding tree: %w", err)
		}
		diagnostic, err := codec.Diagnose(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, diagnostic)
		return err
	default:
		return fmt.Errorf("unknown format %q (want json, cbor, or diag)", format)
	}
}
