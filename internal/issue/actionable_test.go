// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "validate module"},
			want: "failed to validate module",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load module", Resource: "rentals"},
			want: "failed to load module: rentals",
		},
		{
			name: "with cause",
			err:  &ActionableError{Operation: "load configuration", Cause: errors.New("unexpected token")},
			want: "failed to load configuration: unexpected token",
		},
		{
			name: "resource and cause",
			err: &ActionableError{
				Operation: "load module",
				Resource:  "models/rentals.sdm",
				Cause:     fs.ErrNotExist,
			},
			want: "failed to load module: models/rentals.sdm: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load module").
		WithResource("rentals").
		Wrap(fs.ErrNotExist).
		BuildError()

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is does not reach the cause")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As does not find *ActionableError")
	}
	if ae.Resource != "rentals" {
		t.Errorf("Resource = %q, want rentals", ae.Resource)
	}
	if (&ActionableError{Operation: "load module"}).Unwrap() != nil {
		t.Error("Unwrap() without a cause should be nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	chain := errors.New("line 3: expected `end`")
	wrapped := &wrapErr{msg: "parse rentals.sdm", cause: chain}

	tests := []struct {
		name    string
		err     *ActionableError
		verbose bool
		want    string
	}{
		{
			name: "no suggestions",
			err:  &ActionableError{Operation: "load module", Resource: "rentals"},
			want: "failed to load module: rentals",
		},
		{
			name: "suggestions are bulleted",
			err: &ActionableError{
				Operation:   "load module",
				Resource:    "rentals",
				Suggestions: []string{"Set SDML_PATH", "Pass --path"},
			},
			want: "failed to load module: rentals\n\n  • Set SDML_PATH\n  • Pass --path",
		},
		{
			name: "chain hidden unless verbose",
			err:  &ActionableError{Operation: "load module", Cause: wrapped},
			want: "failed to load module: parse rentals.sdm: line 3: expected `end`",
		},
		{
			name:    "verbose shows the chain",
			err:     &ActionableError{Operation: "load module", Cause: wrapped},
			verbose: true,
			want: "failed to load module: parse rentals.sdm: line 3: expected `end`" +
				"\n\nError chain:" +
				"\n  1. parse rentals.sdm: line 3: expected `end`" +
				"\n  2. line 3: expected `end`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Format(tt.verbose); got != tt.want {
				t.Errorf("Format(%v) =\n%q\nwant\n%q", tt.verbose, got, tt.want)
			}
		})
	}
}

// wrapErr is a single-cause error so the verbose chain is predictable.
type wrapErr struct {
	msg   string
	cause error
}

func (e *wrapErr) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *wrapErr) Unwrap() error { return e.cause }

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such module")
	tests := []struct {
		name string
		ctx  *ErrorContext
		want *ActionableError
	}{
		{
			name: "operation is required",
			ctx:  NewErrorContext().WithResource("rentals").WithSuggestion("ignored"),
			want: nil,
		},
		{
			name: "all fields",
			ctx: NewErrorContext().
				WithOperation("load module").
				WithResource("rentals").
				WithSuggestion("Set SDML_PATH").
				WithSuggestion("Pass --path").
				WithIssue(ModuleNotFoundId).
				Wrap(cause),
			want: &ActionableError{
				Operation:   "load module",
				Resource:    "rentals",
				Suggestions: []string{"Set SDML_PATH", "Pass --path"},
				Issue:       ModuleNotFoundId,
				Cause:       cause,
			},
		},
		{
			name: "last setter wins",
			ctx: NewErrorContext().
				WithOperation("parse module").
				WithOperation("load module").
				WithIssue(ModuleParseErrorId).
				WithIssue(FileNotFoundId),
			want: &ActionableError{Operation: "load module", Issue: FileNotFoundId},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.ctx.Build()
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("Build() = %+v, want nil", got)
			case tt.want == nil:
				if err := tt.ctx.BuildError(); err != nil {
					t.Errorf("BuildError() = %v, want a nil interface", err)
				}
				return
			case got == nil:
				t.Fatal("Build() = nil")
			}
			if got.Operation != tt.want.Operation || got.Resource != tt.want.Resource ||
				got.Issue != tt.want.Issue || !errors.Is(got.Cause, tt.want.Cause) ||
				strings.Join(got.Suggestions, "|") != strings.Join(tt.want.Suggestions, "|") {
				t.Errorf("Build() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestActionableError_Explanation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     Id
		wantOK bool
	}{
		{name: "unset", id: 0},
		{name: "registered", id: ImportCycleId, wantOK: true},
		{name: "unknown", id: Id(999)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ae := &ActionableError{Operation: "order modules", Issue: tt.id}
			explanation, ok := ae.Explanation()
			if ok != tt.wantOK {
				t.Fatalf("Explanation() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && explanation.Id() != tt.id {
				t.Errorf("Explanation().Id() = %d, want %d", explanation.Id(), tt.id)
			}
		})
	}
}
