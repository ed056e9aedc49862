// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"io"
	"os"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/propbag"
	"github.com/bureau-foundation/poolkit/lib/tui"
)

type fieldsParams struct {
	cli.JSONOutput
}

type fieldInfo struct {
	Key        string       `json:"key"`
	Property   string       `json:"property"`
	Type       propbag.Type `json:"type"`
	Label      string       `json:"label"`
	Appearance bool         `json:"appearance"`
}

func fieldsCommand() *cli.Command {
	var params fieldsParams

	return &cli.Command{
		Name:    "fields",
		Summary: "List the fields poolkit knows",
		Description: `List every known character and appearance field with the key used
by "poolkit set", the property name stored in the file, and its type.`,
		Usage:  "poolkit fields [flags]",
		Params: func() any { return &params },
		Args:   cli.NoArgs,
		Run: func(args []string) error {
			return runFields(os.Stdout, params.JSONOutput)
		},
	}
}

func knownFields() []fieldInfo {
	var fields []fieldInfo
	for _, field := range charpool.CharacterFields() {
		fields = append(fields, fieldInfo{
			Key:      field.Key(),
			Property: field.Name(),
			Type:     field.Type(),
			Label:    field.Label(),
		})
	}
	for _, field := range charpool.AppearanceFields() {
		fields = append(fields, fieldInfo{
			Key:        field.Key(),
			Property:   field.Name(),
			Type:       field.Type(),
			Label:      field.Label(),
			Appearance: true,
		})
	}
	return fields
}

func runFields(w io.Writer, output cli.JSONOutput) error {
	fields := knownFields()
	if done, err := output.EmitJSON(w, fields); done {
		return err
	}

	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		group := "character"
		if field.Appearance {
			group = "appearance"
		}
		rows = append(rows, []string{field.Key, field.Property, field.Type.String(), group, field.Label})
	}
	return tui.RenderTable(w, tui.DefaultTheme, []string{"KEY", "PROPERTY", "TYPE", "GROUP", "LABEL"}, rows)
}
