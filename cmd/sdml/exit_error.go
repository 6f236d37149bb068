// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

const (
	// ExitOK is returned when every module loaded and validated cleanly.
	ExitOK = 0
	// ExitFailure is returned when errors were reported or loading failed.
	ExitFailure = 1
	// ExitUsage is returned for invalid arguments or flags.
	ExitUsage = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
// A nil Err means the failure has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
