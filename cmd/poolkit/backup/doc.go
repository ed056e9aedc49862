// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package backup implements "poolkit backup": listing, taking, and
// restoring the pool backups kept in the configured backup directory.
package backup
