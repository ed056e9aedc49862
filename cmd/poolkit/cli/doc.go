// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for poolkit.
//
// The central type is [Command]: a named subcommand with optional
// nested [Command.Subcommands], flags derived from a tagged parameter
// struct ([Command.Params], see [BindFlags]), and a Run function.
// [Command.Execute] handles flag parsing, subcommand routing, and
// structured help output with examples. Unknown subcommands and flags
// get a "did you mean" suggestion based on Levenshtein distance.
//
// Every command embeds [ConfigParams] for --config and --log-level,
// and list-style commands embed [JSONOutput] for --json. Commands that
// finish with a non-zero status after printing their own report return
// an [ExitError].
package cli
