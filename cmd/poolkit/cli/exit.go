// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError carries a process exit status for a command that has
// already reported its outcome, such as "poolkit verify" after printing
// a FAIL line. main exits with Code and prints nothing more.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode satisfies the interface main checks returned errors for.
func (e *ExitError) ExitCode() int {
	return e.Code
}
