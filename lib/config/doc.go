// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads poolkit's YAML configuration.
//
// The file is named by the --config flag (via [LoadFile]) or the
// POOLKIT_CONFIG environment variable (via [Load]). Without either,
// [Load] returns [Default]. Values in the file are merged over the
// defaults; keys the file omits keep their default.
//
// Path fields support ${HOME}, ${POOLKIT_ROOT}, and ${VAR:-default}
// expansion after loading. Environment variables never override
// values directly.
//
// This package depends on no other poolkit packages except
// lib/backup, for the compression names it validates.
package config
