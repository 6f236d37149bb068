// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sdml-io/sdml/pkg/source"
)

type (
	// Label points at a span of a source file. Exactly one label of a
	// diagnostic is normally primary.
	Label struct {
		File    source.FileID
		Span    source.Span
		Message string
		Primary bool
	}

	// Diagnostic is a single report produced while parsing, loading or
	// validating a module.
	Diagnostic struct {
		Severity Severity
		Code     ErrorCode
		Message  string
		Labels   []Label
		Notes    []string
	}

	// Sink receives diagnostics as they are produced.
	Sink interface {
		Report(d Diagnostic)
	}

	// SinkFunc adapts a function to the Sink interface.
	SinkFunc func(d Diagnostic)

	// Collector is an in-memory Sink, safe for concurrent use.
	Collector struct {
		mu          sync.Mutex
		diagnostics []Diagnostic
	}

	discardSink struct{}
)

// Discard is a Sink that drops every diagnostic.
var Discard Sink = discardSink{}

// New creates a diagnostic for code, with the code's severity and message.
func New(code ErrorCode) Diagnostic {
	return Diagnostic{
		Severity: code.Severity(),
		Code:     code,
		Message:  code.Message(),
	}
}

// PrimaryLabel creates a primary label.
func PrimaryLabel(file source.FileID, span source.Span) Label {
	return Label{File: file, Span: span, Primary: true}
}

// SecondaryLabel creates a secondary label.
func SecondaryLabel(file source.FileID, span source.Span) Label {
	return Label{File: file, Span: span}
}

// WithMessage returns a copy of the label with its message set.
func (l Label) WithMessage(msg string) Label {
	l.Message = msg
	return l
}

// WithLabel returns a copy of d with label appended.
func (d Diagnostic) WithLabel(label Label) Diagnostic {
	d.Labels = append(slices.Clip(d.Labels), label)
	return d
}

// WithLabels returns a copy of d with labels appended.
func (d Diagnostic) WithLabels(labels ...Label) Diagnostic {
	d.Labels = append(slices.Clip(d.Labels), labels...)
	return d
}

// WithNote returns a copy of d with a note appended.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), note)
	return d
}

// WithNotes returns a copy of d with notes appended.
func (d Diagnostic) WithNotes(notes ...string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), notes...)
	return d
}

// WithMessage returns a copy of d with its message replaced.
func (d Diagnostic) WithMessage(msg string) Diagnostic {
	d.Message = msg
	return d
}

// Primary returns the first primary label, or the first label when none is
// marked primary.
func (d Diagnostic) Primary() (Label, bool) {
	for _, l := range d.Labels {
		if l.Primary {
			return l, true
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0], true
	}
	return Label{}, false
}

// File returns the file of the primary label, or source.NoFile.
func (d Diagnostic) File() source.FileID {
	if l, ok := d.Primary(); ok {
		return l.File
	}
	return source.NoFile
}

// Span returns the span of the primary label.
func (d Diagnostic) Span() (source.Span, bool) {
	if l, ok := d.Primary(); ok {
		return l.Span, true
	}
	return source.Span{}, false
}

// String renders d on a single line, without source context.
func (d Diagnostic) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%s]: %s", d.Severity, d.Code, d.Message)
	for _, n := range d.Notes {
		sb.WriteString("; ")
		sb.WriteString(n)
	}
	return sb.String()
}

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

func (discardSink) Report(Diagnostic) {}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report records d.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns a copy of everything recorded so far, in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.diagnostics)
}

// Codes returns the codes of everything recorded so far, in report order.
func (c *Collector) Codes() []ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	codes := make([]ErrorCode, len(c.diagnostics))
	for i, d := range c.diagnostics {
		codes[i] = d.Code
	}
	return codes
}

// Count returns how many diagnostics with code were recorded.
func (c *Collector) Count(code ErrorCode) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diagnostics {
		if d.Code == code {
			n++
		}
	}
	return n
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diagnostics)
}

// HasErrors reports whether any bug or error was recorded.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diagnostics {
		if d.Severity <= SeverityError {
			return true
		}
	}
	return false
}

// Reset drops everything recorded so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = nil
}

// ReplayTo forwards every recorded diagnostic, in order, to sink.
func (c *Collector) ReplayTo(sink Sink) {
	for _, d := range c.Diagnostics() {
		sink.Report(d)
	}
}
