// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package charpool maps decoded character pool files onto characters
// with named, typed fields, and back.
//
// The field registry is closed: [CharacterField] covers the soldier
// properties the editor understands and [AppearanceField] the children
// of the nested appearance struct. Any other property becomes an
// [UnknownField] and is carried through untouched, in its original
// position, so a pool that is opened and written without edits
// reproduces the source file byte for byte.
//
// Appearance fields are flattened into the character view (Get and Set
// address them directly) but are stored as one struct child. On the
// way back to a property tree they are re-nested under the original
// struct type name.
//
// Entry points:
//
//   - [Open] reads and maps a pool file; [Read] does the same for bytes.
//   - [Pool.Write] encodes the pool and atomically replaces a file.
//   - [LookupField] and [ParseField] resolve property names and CLI keys.
//
// The package does no logging and keeps no global mutable state.
package charpool
