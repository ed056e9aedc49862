// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/tui"
)

type listParams struct {
	cli.ConfigParams
	cli.JSONOutput
}

// characterSummary is one row of the list output.
type characterSummary struct {
	Index    int    `json:"index"`
	Digest   string `json:"digest"`
	Name     string `json:"name"`
	Template string `json:"template"`
	Class    string `json:"class,omitempty"`
	Country  string `json:"country,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Unknown  int    `json:"unknown_fields"`
}

type listResult struct {
	Pool       string             `json:"pool"`
	FileName   string             `json:"file_name"`
	Characters []characterSummary `json:"characters"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List the characters in a pool",
		Description: `List every character in a pool with its index, content ID, name,
template, class, country, and gender. The index is what show, set, and remove
take to select a character. The ID is a digest of the character's
encoded properties: two rows with the same ID are identical entries.

The unknown column counts properties poolkit has no field for. They
are carried through edits unchanged.`,
		Usage: "poolkit list <pool> [flags]",
		Examples: []cli.Example{
			{
				Description: "List a pool from the configured pool directory",
				Command:     "poolkit list Importable",
			},
			{
				Description: "List a pool file as JSON",
				Command:     "poolkit list ./Importable.bin --json",
			},
		},
		Params: func() any { return &params },
		Args:   cli.ExactArgs(1),
		Run: func(args []string) error {
			cfg, _, err := params.Setup("list")
			if err != nil {
				return err
			}
			return runList(os.Stdout, cfg.ResolvePool(args[0]), params.JSONOutput)
		},
	}
}

func runList(w io.Writer, path string, output cli.JSONOutput) error {
	pool, err := charpool.Open(path)
	if err != nil {
		return err
	}

	result := listResult{
		Pool:       pool.Name,
		FileName:   pool.FileName,
		Characters: make([]characterSummary, 0, len(pool.Characters)),
	}
	for index, character := range pool.Characters {
		summary, err := summarize(index, character)
		if err != nil {
			return err
		}
		result.Characters = append(result.Characters, summary)
	}

	if done, err := output.EmitJSON(w, result); done {
		return err
	}

	if len(result.Characters) == 0 {
		_, err := fmt.Fprintf(w, "%s: no characters\n", pool.Name)
		return err
	}
	rows := make([][]string, 0, len(result.Characters))
	for _, summary := range result.Characters {
		unknown := ""
		if summary.Unknown > 0 {
			unknown = strconv.Itoa(summary.Unknown)
		}
		rows = append(rows, []string{
			strconv.Itoa(summary.Index),
			summary.Digest,
			summary.Name,
			summary.Template,
			summary.Class,
			summary.Country,
			summary.Gender,
			unknown,
		})
	}
	return tui.RenderTable(w, tui.DefaultTheme, []string{"#", "ID", "NAME", "TEMPLATE", "CLASS", "COUNTRY", "GENDER", "UNKNOWN"}, rows)
}

func summarize(index int, character *charpool.Character) (characterSummary, error) {
	hash, err := character.Digest()
	if err != nil {
		return characterSummary{}, fmt.Errorf("character %d: %w", index, err)
	}
	summary := characterSummary{
		Digest:   hash.Short(),
		Index:    index,
		Name:     character.DisplayName(),
		Template: charpool.TemplateLabel(character.Template()),
		Class:    character.SoldierClass(),
		Country:  character.Country(),
		Unknown:  len(character.Unknown()),
	}
	if gender, ok := character.Gender(); ok {
		summary.Gender = gender.String()
	}
	return summary, nil
}
