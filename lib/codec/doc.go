// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds poolkit's CBOR configuration.
//
// poolkit writes two kinds of CBOR: the backup manifest, an
// append-only sequence of records next to the compressed backups, and
// the `poolkit dump --format cbor` export of a property tree. Both go
// through the modes defined here so the bytes are deterministic (RFC
// 8949 §4.2 core encoding: sorted map keys, shortest integers, no
// indefinite lengths).
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
//
// Types that are also printed as JSON carry `json` tags only;
// fxamacker/cbor falls back to them when no `cbor` tag is present.
// Types implementing encoding.TextMarshaler (digests, property types)
// are written as CBOR text strings.
package codec
