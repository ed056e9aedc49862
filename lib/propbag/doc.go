// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package propbag reads and writes the size-prefixed, self-describing
// property bag format the game engine uses for character pool save
// files.
//
// A file is a 4-byte magic marker followed by a sequence of property
// records. Each record carries its name, a type name, and a
// type-specific payload. Struct and array payloads nest further
// property lists, each closed by a "None" sentinel record. All integers
// are little-endian.
//
// The central guarantee is round-trip fidelity: for any file accepted
// by [Decode], [Encode] reproduces the original bytes exactly. Values
// whose meaning is not understood (the trailing integer of a name
// value, the size field of an array) are carried opaquely rather than
// recomputed.
//
// Decoding is strict. Every padding word, size field, string
// terminator, and sentinel is checked, and the first violation aborts
// the whole decode with a [*FormatError] (or [*UnsupportedTypeError]
// for an unknown type name). There is no partial result.
//
//	file, err := propbag.ReadFile("Soldiers.bin")
//	if err != nil {
//	    return err
//	}
//	data, err := propbag.Encode(file) // identical to the input bytes
//
// Only six property types are supported: bool, int, string, name,
// struct, and array. This is not a general engine property library.
//
// Decode and Encode hold no state between calls and are safe to call
// concurrently on independent inputs.
//
// This package depends on no other poolkit packages.
package propbag
