// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
)

// ErrInvalidSpan is returned when a span's start lies after its end or
// either offset is negative.
var ErrInvalidSpan = errors.New("invalid span")

type (
	// Span is a half-open byte range [start, end) into a source text.
	Span struct {
		start int
		end   int
	}

	// InvalidSpanError carries the offending offsets.
	// It wraps ErrInvalidSpan for errors.Is() compatibility.
	InvalidSpanError struct {
		Start int
		End   int
	}
)

// Error implements the error interface.
func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("invalid span %d..%d: start must not exceed end", e.Start, e.End)
}

// Unwrap returns ErrInvalidSpan.
func (e *InvalidSpanError) Unwrap() error { return ErrInvalidSpan }

// NewSpan creates a span, rejecting start > end and negative offsets.
func NewSpan(start, end int) (Span, error) {
	if start < 0 || end < 0 || start > end {
		return Span{}, &InvalidSpanError{Start: start, End: end}
	}
	return Span{start: start, end: end}, nil
}

// MustSpan is like NewSpan but panics on an invalid range.
func MustSpan(start, end int) Span {
	s, err := NewSpan(start, end)
	if err != nil {
		panic(err)
	}
	return s
}

// Start returns the inclusive start offset.
func (s Span) Start() int { return s.start }

// End returns the exclusive end offset.
func (s Span) End() int { return s.end }

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.end - s.start }

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.start == s.end }

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.start && offset < s.end
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	return Span{start: min(s.start, other.start), end: max(s.end, other.end)}
}

// String returns the span as "start..end".
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.start, s.end)
}
