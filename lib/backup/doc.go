// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package backup keeps compressed copies of pool files taken before
// poolkit overwrites them.
//
// A [Store] is a directory holding one file per backup, named
// "<pool>-<digest>.<ext>" where digest is the first 12 hex characters
// of the pool's [digest.Pool] hash, and a manifest. The manifest is a
// CBOR sequence of [Record] values appended as backups are taken.
// Saving a file whose content is already backed up returns the
// existing record without writing anything.
//
// Backups are compressed with zstd or lz4 (frame format, readable by
// the lz4 command-line tool) or stored as-is. Restore decompresses,
// checks size and digest against the record, and replaces the
// destination atomically.
package backup
