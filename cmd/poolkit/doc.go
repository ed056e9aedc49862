// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Poolkit is the command-line tool for XCOM 2 character pool files.
// It provides subcommands for reading pools (list, show, dump, fields),
// editing them (set, remove), checking that they round-trip exactly
// (verify), and managing the backups taken before every write
// (backup).
package main
