// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"errors"
)

// ErrDiagnostic is the sentinel matched by every *Error.
var ErrDiagnostic = errors.New("diagnostic reported")

// Error carries a Diagnostic through an error return.
type Error struct {
	Diagnostic Diagnostic
}

// AsError wraps d as an error.
func AsError(d Diagnostic) *Error {
	return &Error{Diagnostic: d}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Diagnostic.String()
}

// Unwrap returns ErrDiagnostic for errors.Is checks.
func (e *Error) Unwrap() error { return ErrDiagnostic }

// Code returns the wrapped diagnostic's code.
func (e *Error) Code() ErrorCode { return e.Diagnostic.Code }

// DiagnosticOf extracts the diagnostic carried anywhere in err's chain.
func DiagnosticOf(err error) (Diagnostic, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Diagnostic, true
	}
	var carrier interface{ AsDiagnostic() Diagnostic }
	if errors.As(err, &carrier) {
		return carrier.AsDiagnostic(), true
	}
	return Diagnostic{}, false
}
