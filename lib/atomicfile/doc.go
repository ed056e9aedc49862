// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomicfile replaces files so that readers see either the old
// content or the new, never a partial write.
package atomicfile
