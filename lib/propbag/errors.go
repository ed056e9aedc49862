// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package propbag

import (
	"errors"
	"fmt"
)

// Format error kinds. Every [*FormatError] wraps exactly one of these,
// so callers can classify failures with errors.Is.
var (
	ErrMagic         = errors.New("bad magic marker")
	ErrPadding       = errors.New("non-zero padding")
	ErrSize          = errors.New("size mismatch")
	ErrTerminator    = errors.New("missing string terminator")
	ErrTruncated     = errors.New("truncated stream")
	ErrCountMismatch = errors.New("array count mismatch")
	ErrSentinel      = errors.New("bad sentinel")
	ErrLength        = errors.New("invalid length")
)

// FormatError reports a structural violation found while decoding.
// Offset is the byte position of the offending field.
type FormatError struct {
	Offset   int
	Expected string
	Actual   string
	Err      error
}

func (e *FormatError) Error() string {
	if e.Expected == "" && e.Actual == "" {
		return fmt.Sprintf("offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("offset %d: %v: expected %s, got %s", e.Offset, e.Err, e.Expected, e.Actual)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError reports a property type name outside the
// supported set. Offset is -1 when the name did not come from a
// stream (see [ParseType]).
type UnsupportedTypeError struct {
	Offset int
	Name   string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("unsupported property type %q", e.Name)
	}
	return fmt.Sprintf("offset %d: unsupported property type %q", e.Offset, e.Name)
}
