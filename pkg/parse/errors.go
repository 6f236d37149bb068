// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/source"
)

var (
	// ErrErrorNode is returned when the grammar marked a node as an error.
	ErrErrorNode = errors.New("syntax error node")

	// ErrMissingNode is returned when a required node or field is absent.
	ErrMissingNode = errors.New("missing syntax node")

	// ErrUnexpectedNode is returned for a node of an unexpected kind.
	ErrUnexpectedNode = errors.New("unexpected syntax node")

	// ErrInvalidValue is returned for a literal that cannot be represented.
	ErrInvalidValue = errors.New("invalid literal value")
)

type (
	// ErrorNodeError reports a grammar error marker met in Rule.
	// It wraps ErrErrorNode for errors.Is() compatibility.
	ErrorNodeError struct {
		File source.FileID
		Rule string
		Span source.Span
	}

	// MissingNodeError reports an absent required node. Field names the
	// missing field, or the kind of a missing node inserted by the grammar.
	// It wraps ErrMissingNode for errors.Is() compatibility.
	MissingNodeError struct {
		File  source.FileID
		Rule  string
		Field string
		Span  source.Span
	}

	// UnexpectedNodeError reports a node whose kind is not one Rule accepts.
	// It wraps ErrUnexpectedNode for errors.Is() compatibility.
	UnexpectedNodeError struct {
		File     source.FileID
		Rule     string
		Expected []string
		Actual   string
		Span     source.Span
	}

	// InvalidValueError reports a literal outside the range of its type.
	// It wraps ErrInvalidValue for errors.Is() compatibility.
	InvalidValueError struct {
		File     source.FileID
		Value    string
		TypeName string
		Span     source.Span
		Err      error
	}
)

func (e *ErrorNodeError) Error() string {
	return fmt.Sprintf("syntax error at %s in rule %s", e.Span, e.Rule)
}

// Unwrap returns ErrErrorNode.
func (e *ErrorNodeError) Unwrap() error { return ErrErrorNode }

// AsDiagnostic returns the diagnostic reported for this error.
func (e *ErrorNodeError) AsDiagnostic() diag.Diagnostic {
	return diag.NewFoundErrorNode(e.File, e.Span, e.Rule)
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("missing %s at %s in rule %s", e.Field, e.Span, e.Rule)
}

// Unwrap returns ErrMissingNode.
func (e *MissingNodeError) Unwrap() error { return ErrMissingNode }

// AsDiagnostic returns the diagnostic reported for this error.
func (e *MissingNodeError) AsDiagnostic() diag.Diagnostic {
	return diag.NewMissingNode(e.File, e.Span, e.Rule, e.Field)
}

func (e *UnexpectedNodeError) Error() string {
	return fmt.Sprintf("unexpected %s at %s in rule %s, expecting one of %s",
		e.Actual, e.Span, e.Rule, strings.Join(e.Expected, ", "))
}

// Unwrap returns ErrUnexpectedNode.
func (e *UnexpectedNodeError) Unwrap() error { return ErrUnexpectedNode }

// AsDiagnostic returns the diagnostic reported for this error.
func (e *UnexpectedNodeError) AsDiagnostic() diag.Diagnostic {
	return diag.NewUnexpectedNodeKind(e.File, e.Span, e.Rule, e.Expected, e.Actual)
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %s for type %s: %v", e.Value, e.TypeName, e.Err)
}

// Unwrap returns ErrInvalidValue.
func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// AsDiagnostic returns the diagnostic reported for this error.
func (e *InvalidValueError) AsDiagnostic() diag.Diagnostic {
	span := e.Span
	return diag.NewInvalidValueForType(e.File, &span, e.Value, e.TypeName)
}
