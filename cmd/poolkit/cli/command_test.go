// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	root := &Command{
		Name: "poolkit",
		Subcommands: []*Command{
			{Name: "list", Run: func(args []string) error { called = "list"; return nil }},
			{Name: "show", Run: func(args []string) error { called = "show"; return nil }},
		},
	}
	if err := root.Execute([]string{"show"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "show" {
		t.Errorf("dispatched to %q, want show", called)
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string
	root := &Command{
		Name: "poolkit",
		Subcommands: []*Command{{
			Name: "backup",
			Subcommands: []*Command{{
				Name: "restore",
				Run: func(args []string) error {
					receivedArgs = args
					return nil
				},
			}},
		}},
	}
	if err := root.Execute([]string{"backup", "restore", "3fa2b1"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "3fa2b1" {
		t.Errorf("args = %v, want [3fa2b1]", receivedArgs)
	}
}

type testParams struct {
	ConfigParams
	JSONOutput
	Output   string `flag:"output,o" desc:"output file"`
	NoBackup bool   `flag:"no-backup" desc:"skip backup"`
	Limit    int    `flag:"limit" default:"10" desc:"maximum rows"`
}

func TestCommand_Execute_ParamsBecomeFlags(t *testing.T) {
	var params testParams
	var receivedArgs []string
	command := &Command{
		Name:   "set",
		Params: func() any { return &params },
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	err := command.Execute([]string{"-o", "out.bin", "--no-backup", "--json", "--config", "/etc/poolkit.yaml", "pool.bin", "0"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Output != "out.bin" || !params.NoBackup || !params.OutputJSON || params.ConfigPath != "/etc/poolkit.yaml" {
		t.Errorf("params = %+v", params)
	}
	if params.Limit != 10 {
		t.Errorf("default limit = %d, want 10", params.Limit)
	}
	if strings.Join(receivedArgs, " ") != "pool.bin 0" {
		t.Errorf("args = %v", receivedArgs)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name: "poolkit",
		Subcommands: []*Command{
			{Name: "verify", Run: func([]string) error { return nil }},
			{Name: "remove", Run: func([]string) error { return nil }},
		},
	}
	err := root.Execute([]string{"verfy"})
	if err == nil || !strings.Contains(err.Error(), `did you mean "verify"`) {
		t.Errorf("error = %v, want a suggestion for verify", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	var params testParams
	command := &Command{
		Name:   "set",
		Params: func() any { return &params },
		Run:    func([]string) error { return nil },
	}
	err := command.Execute([]string{"--no-backp"})
	if err == nil || !strings.Contains(err.Error(), "did you mean --no-backup") {
		t.Errorf("error = %v, want a suggestion for --no-backup", err)
	}
}

func TestCommand_Execute_PropagatesRunError(t *testing.T) {
	want := &ExitError{Code: 1}
	command := &Command{Name: "verify", Run: func([]string) error { return want }}
	err := command.Execute(nil)
	var exitError *ExitError
	if !errors.As(err, &exitError) || exitError.ExitCode() != 1 {
		t.Errorf("error = %v, want ExitError{1}", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var params testParams
	root := &Command{Name: "poolkit"}
	command := &Command{
		Name:        "set",
		Summary:     "Edit character fields",
		Description: "Edit fields of one character.",
		Usage:       "poolkit set <pool> <index> field=value...",
		Params:      func() any { return &params },
		Examples: []Example{
			{Description: "Rename a soldier", Command: "poolkit set Importable 0 first-name=Ana"},
		},
		parent: root,
	}

	var output bytes.Buffer
	command.PrintHelp(&output)
	help := output.String()
	for _, want := range []string{
		"Edit fields of one character.",
		"poolkit set <pool> <index> field=value...",
		"--no-backup",
		"--config",
		"# Rename a soldier",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestCommand_Execute_ValidatesArgs(t *testing.T) {
	called := false
	command := &Command{
		Name:  "show",
		Usage: "poolkit show <pool> <index>",
		Args:  ExactArgs(2),
		Run:   func([]string) error { called = true; return nil },
	}

	err := command.Execute([]string{"Importable"})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("error = %v, want ErrUsage", err)
	}
	if !strings.Contains(err.Error(), "poolkit show <pool> <index>") {
		t.Errorf("usage line missing from %q", err)
	}
	if called {
		t.Error("Run called with the wrong number of arguments")
	}

	if err := command.Execute([]string{"Importable", "0"}); err != nil || !called {
		t.Errorf("Execute with two arguments: err=%v called=%v", err, called)
	}
}

func TestArgsValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator ArgsValidator
		args      []string
		wantError bool
	}{
		{"no args accepts none", NoArgs, nil, false},
		{"no args rejects one", NoArgs, []string{"x"}, true},
		{"exact matches", ExactArgs(1), []string{"x"}, false},
		{"exact too many", ExactArgs(1), []string{"x", "y"}, true},
		{"minimum met", MinimumArgs(1), []string{"x", "y"}, false},
		{"minimum missed", MinimumArgs(2), []string{"x"}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.validator(test.args)
			if (err != nil) != test.wantError {
				t.Errorf("error = %v, wantError %v", err, test.wantError)
			}
			if err != nil && !errors.Is(err, ErrUsage) {
				t.Errorf("error %v does not wrap ErrUsage", err)
			}
		})
	}
}

func TestCommand_Execute_HelpAfterArguments(t *testing.T) {
	var params testParams
	called := false
	command := &Command{
		Name:   "set",
		Params: func() any { return &params },
		Run:    func([]string) error { called = true; return nil },
	}
	if err := command.Execute([]string{"pool.bin", "--help"}); err != nil {
		t.Errorf("Execute() error: %v", err)
	}
	if called {
		t.Error("Run called when help was requested")
	}
}
