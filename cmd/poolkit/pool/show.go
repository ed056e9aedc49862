// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/propbag"
	"github.com/bureau-foundation/poolkit/lib/tui"
)

type showParams struct {
	cli.ConfigParams
	cli.JSONOutput
}

type showField struct {
	Key        string `json:"key,omitempty"`
	Label      string `json:"label"`
	Appearance bool   `json:"appearance"`
	Unknown    bool   `json:"unknown"`
	Property   *node  `json:"property"`
}

type showResult struct {
	Index          int         `json:"index"`
	Name           string      `json:"name"`
	AppearanceType string      `json:"appearance_type,omitempty"`
	Fields         []showField `json:"fields"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show every field of one character",
		Description: `Show all properties of the character at <index>, grouped into
character fields and appearance fields. Properties poolkit does not
recognize are listed under their property names and marked unknown.

Enumerated fields (gender, race, attitude) and the character template
are shown with their meaning next to the stored value.`,
		Usage: "poolkit show <pool> <index> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the first character of a pool",
				Command:     "poolkit show Importable 0",
			},
		},
		Params: func() any { return &params },
		Args:   cli.ExactArgs(2),
		Run: func(args []string) error {
			cfg, _, err := params.Setup("show")
			if err != nil {
				return err
			}
			return runShow(os.Stdout, cfg.ResolvePool(args[0]), args[1], params.JSONOutput)
		},
	}
}

func runShow(w io.Writer, path, indexArgument string, output cli.JSONOutput) error {
	pool, err := charpool.Open(path)
	if err != nil {
		return err
	}
	index, character, err := parseIndex(pool, indexArgument)
	if err != nil {
		return err
	}

	result := showResult{Index: index, Name: character.DisplayName()}
	if typeName, ok := character.AppearanceType(); ok {
		result.AppearanceType = typeName
	}
	for _, entry := range character.TopLevel() {
		result.Fields = append(result.Fields, newShowField(entry, false))
	}
	for _, entry := range character.AppearanceEntries() {
		result.Fields = append(result.Fields, newShowField(entry, true))
	}

	if done, err := output.EmitJSON(w, result); done {
		return err
	}

	sections := []tui.Section{
		{Title: "Character", Items: detailItems(character.TopLevel())},
		{Title: "Appearance", Items: detailItems(character.AppearanceEntries())},
	}
	title := fmt.Sprintf("#%d %s", index, result.Name)
	return tui.RenderDetail(w, tui.DefaultTheme, title, sections)
}

func newShowField(entry charpool.Entry, appearance bool) showField {
	property := propbag.NewProperty(entry.Field.Name(), entry.Value)
	return showField{
		Key:        fieldKey(entry.Field),
		Label:      fieldLabel(entry.Field),
		Appearance: appearance,
		Unknown:    isUnknown(entry.Field),
		Property:   newNode(&property),
	}
}

func detailItems(entries []charpool.Entry) []tui.Item {
	items := make([]tui.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, tui.Item{
			Label:   fieldLabel(entry.Field),
			Value:   formatFieldValue(entry.Field, entry.Value),
			Unknown: isUnknown(entry.Field),
		})
	}
	return items
}
