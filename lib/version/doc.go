// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the poolkit binary.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected at
// build time with -ldflags -X. When they are not (go install, test
// runs), the VCS stamps recorded by the Go toolchain are used instead.
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for --version
//   - [Full] -- Info plus Go version and GOOS/GOARCH
//   - [Current] -- the same data as a struct for --json output
package version
