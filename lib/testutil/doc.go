// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for poolkit packages.
//
// [Wire] builds property bag bytes by hand, one little-endian field at
// a time, so codec tests compare against fixtures that were not
// produced by the encoder under test. [SamplePool] assembles a small
// but complete character pool file from it.
//
// [TempFile] writes fixture bytes into the test's temporary directory
// and returns the path.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) for tests that fan work out to
// goroutines.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no poolkit-internal dependencies.
package testutil
