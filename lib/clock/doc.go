// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// Code that stamps records (backup creation times, for instance) takes
// a Clock instead of calling time.Now, so tests can pin timestamps:
//
//	store := &backup.Store{Dir: dir, Clock: clock.Fake(start)}
//	// ... save a backup ...
//	fake.Advance(time.Hour)
package clock
