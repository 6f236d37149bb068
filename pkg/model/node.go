// SPDX-License-Identifier: MPL-2.0

package model

import (
	"strings"

	"github.com/sdml-io/sdml/pkg/source"
)

type (
	// Spanned records where a model node came from. A nil Span marks a node
	// built in memory rather than parsed from text.
	Spanned struct {
		Span *source.Span
	}

	// Commented holds the line comments attached to a node.
	Commented struct {
		comments []Comment
	}

	// Comment is a single line comment, including its leading semicolon.
	Comment struct {
		Spanned
		Text string
	}
)

// At returns a Spanned for span.
func At(span source.Span) Spanned {
	return Spanned{Span: &span}
}

// SourceSpan returns the node's span, or nil.
func (s Spanned) SourceSpan() *source.Span { return s.Span }

// HasSourceSpan reports whether the node was parsed from text.
func (s Spanned) HasSourceSpan() bool { return s.Span != nil }

// Comments returns the attached comments in source order.
func (c *Commented) Comments() []Comment { return c.comments }

// AddComments appends comments.
func (c *Commented) AddComments(comments ...Comment) {
	c.comments = append(c.comments, comments...)
}

// Body returns the comment text without the semicolon prefix.
func (c Comment) Body() string {
	return strings.TrimSpace(strings.TrimLeft(c.Text, ";"))
}
