// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to stderr at the
// given level. When stderr is a terminal it uses slog.TextHandler for
// human-readable output; otherwise slog.JSONHandler, so scripted runs
// get machine-parseable logs.
//
// Callers scope the logger with command context via With():
//
//	logger := cli.NewCommandLogger(level).With("command", "set", "pool", path)
func NewCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if IsTerminal(os.Stderr) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// IsTerminal reports whether file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
