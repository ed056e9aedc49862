// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bureau-foundation/poolkit/cmd/poolkit/cli"
	"github.com/bureau-foundation/poolkit/lib/charpool"
	"github.com/bureau-foundation/poolkit/lib/propbag"
)

type setParams struct {
	cli.ConfigParams
	writeParams
	Unset []string `json:"unset" flag:"unset" desc:"remove these fields (comma-separated keys)"`
}

func setCommand() *cli.Command {
	var params setParams

	return &cli.Command{
		Name:    "set",
		Summary: "Change fields of one character",
		Description: `Assign field values on the character at <index> and write the pool
back. Each assignment is key=value, where key is a field key from
"poolkit fields" or its property name.

Values are parsed by the field's type: strings are taken verbatim,
integers accept a number or, for gender, race and attitude, a name
such as "female" or "happy go lucky". Booleans take true or false.
Name fields keep the trailing number they already had.

The pool is backed up before it is overwritten unless --no-backup is
given or backups are disabled in the configuration.`,
		Usage: "poolkit set <pool> <index> key=value... [flags]",
		Examples: []cli.Example{
			{
				Description: "Rename a soldier and give them a nickname",
				Command:     "poolkit set Importable 3 first-name=Jane nickname=\"'Ghost'\"",
			},
			{
				Description: "Change attitude and write a copy instead of the original",
				Command:     "poolkit set Importable 3 attitude=twitchy --output /tmp/edited.bin",
			},
		},
		Params: func() any { return &params },
		Args:   cli.MinimumArgs(2),
		Run: func(args []string) error {
			if len(args) == 2 && len(params.Unset) == 0 {
				return fmt.Errorf("nothing to change: give key=value assignments or --unset")
			}
			cfg, logger, err := params.Setup("set")
			if err != nil {
				return err
			}
			path := cfg.ResolvePool(args[0])
			target, err := newWriteTarget(cfg, path, params.writeParams)
			if err != nil {
				return err
			}
			return runSet(logger, path, args[1], args[2:], params.Unset, target)
		},
	}
}

// assignment is one parsed key=value argument.
type assignment struct {
	Field charpool.Field
	Text  string
}

func runSet(logger *slog.Logger, path, indexArgument string, assignments, unset []string, target writeTarget) error {
	parsed := make([]assignment, 0, len(assignments))
	for _, argument := range assignments {
		key, text, ok := strings.Cut(argument, "=")
		if !ok {
			return fmt.Errorf("assignment %q is not key=value", argument)
		}
		field, err := parseFieldArgument(key)
		if err != nil {
			return err
		}
		parsed = append(parsed, assignment{Field: field, Text: text})
	}
	removals := make([]charpool.Field, 0, len(unset))
	for _, key := range unset {
		field, err := parseFieldArgument(key)
		if err != nil {
			return err
		}
		removals = append(removals, field)
	}

	pool, err := charpool.Open(path)
	if err != nil {
		return err
	}
	index, character, err := parseIndex(pool, indexArgument)
	if err != nil {
		return err
	}

	for _, a := range parsed {
		current, _ := character.Get(a.Field)
		value, err := parseFieldValue(a.Field, a.Text, current)
		if err != nil {
			return err
		}
		if err := character.Set(a.Field, value); err != nil {
			return err
		}
		logger.Debug("set field", "index", index, "field", a.Field.Name(), "value", formatValue(value))
	}
	for _, field := range removals {
		if character.Delete(field) {
			logger.Debug("removed field", "index", index, "field", field.Name())
		}
	}

	return writePool(logger, pool, target)
}

// parseFieldArgument resolves a field key, suggesting the closest known
// key when nothing matches.
func parseFieldArgument(key string) (charpool.Field, error) {
	field, err := charpool.ParseField(key)
	if err != nil {
		if suggestion := cli.Suggest(key, fieldKeys()); suggestion != "" {
			return nil, fmt.Errorf("%w (did you mean %q?)", err, suggestion)
		}
		return nil, err
	}
	if field == charpool.Appearance {
		return nil, fmt.Errorf("%s is a struct; set its fields individually", field.Name())
	}
	return field, nil
}

// parseFieldValue converts text to a value of the field's type. current
// is the value the field holds now, if any.
func parseFieldValue(field charpool.Field, text string, current propbag.Value) (propbag.Value, error) {
	switch field.Type() {
	case propbag.TypeString:
		return propbag.String(text), nil
	case propbag.TypeName:
		name := propbag.Name{Text: text}
		if existing, ok := current.(propbag.Name); ok {
			name.Number = existing.Number
		}
		return name, nil
	case propbag.TypeBool:
		value, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", field.Name(), text)
		}
		return propbag.Bool(value), nil
	case propbag.TypeInt:
		return parseIntField(field, text)
	default:
		return nil, fmt.Errorf("%s: %s fields cannot be set from the command line", field.Name(), field.Type())
	}
}

func parseIntField(field charpool.Field, text string) (propbag.Value, error) {
	var (
		value int32
		err   error
	)
	switch field {
	case charpool.Gender:
		var gender charpool.SoldierGender
		gender, err = charpool.ParseGender(text)
		value = int32(gender)
	case charpool.Race:
		var race charpool.SoldierRace
		race, err = charpool.ParseRace(text)
		value = int32(race)
	case charpool.Attitude:
		var personality charpool.SoldierPersonality
		personality, err = charpool.ParsePersonality(text)
		value = int32(personality)
	default:
		var parsed int64
		parsed, err = strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		if err != nil {
			err = fmt.Errorf("%q is not a 32-bit integer", text)
		}
		value = int32(parsed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field.Name(), err)
	}
	return propbag.Int(value), nil
}

func fieldKeys() []string {
	fields := knownFields()
	keys := make([]string, 0, len(fields))
	for _, field := range fields {
		keys = append(keys, field.Key)
	}
	return keys
}
