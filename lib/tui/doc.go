// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui renders poolkit's terminal output: aligned tables for
// pool listings, labeled detail views for single characters, and
// status lines for verification results.
//
// Rendering goes through a lipgloss renderer bound to the destination
// writer, so colors appear only when that writer is a terminal that
// supports them. Output to pipes and files is plain text with the same
// alignment.
package tui
