// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool implements the poolkit commands that read and edit
// character pool files: list, show, set, remove, copy, verify, dump,
// and fields.
//
// Each command's Run resolves the pool argument through the
// configuration (a bare name is looked up in paths.pools) and then
// calls a function that takes explicit paths and writers, which is
// what the tests exercise. Commands that overwrite a pool take a
// backup first unless backups are disabled or --no-backup is given.
package pool
