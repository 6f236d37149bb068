// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/language"

	"github.com/sdml-io/sdml/pkg/source"
)

// ErrInvalidLanguageTag is returned when a language tag is not valid BCP-47.
var ErrInvalidLanguageTag = errors.New("invalid language tag")

type (
	// Value is the right-hand side of an annotation property: a simple value,
	// a *ValueConstructor, a *ListOfValues or a ReferenceValue.
	Value interface {
		SourceSpan() *source.Span
		String() string
		isValue()
	}

	// SimpleValue is Boolean, Integer, Decimal, Double, LanguageString or IRI.
	SimpleValue interface {
		Value
		isSimpleValue()
	}

	// Boolean is true or false.
	Boolean struct {
		Spanned
		Value bool
	}

	// Integer is a signed 64-bit integer.
	Integer struct {
		Spanned
		Value int64
	}

	// Decimal is an arbitrary-precision fixed-point number.
	Decimal struct {
		Spanned
		Value *apd.Decimal
	}

	// Double is an IEEE-754 double.
	Double struct {
		Spanned
		Value float64
	}

	// LanguageString is a string, optionally tagged with a language.
	LanguageString struct {
		Spanned
		Value    string
		Language *LanguageTag
	}

	// IRI is an absolute IRI.
	IRI struct {
		Spanned
		Value *url.URL
	}

	// ValueConstructor builds a value of a named datatype from a simple value.
	ValueConstructor struct {
		Spanned
		TypeName IdentifierReference
		Value    SimpleValue
	}

	// ListOfValues is a bracketed sequence of values.
	ListOfValues struct {
		Spanned
		Values []Value
	}

	// ReferenceValue uses a definition or individual name as a value.
	ReferenceValue struct {
		Spanned
		Ref IdentifierReference
	}

	// LanguageTag is a BCP-47 tag attached to a string.
	LanguageTag struct {
		Spanned
		tag string
	}

	// InvalidLanguageTagError carries the rejected tag.
	// It wraps ErrInvalidLanguageTag for errors.Is() compatibility.
	InvalidLanguageTagError struct {
		Value string
		Err   error
	}
)

// Error implements the error interface.
func (e *InvalidLanguageTagError) Error() string {
	return fmt.Sprintf("invalid language tag %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidLanguageTag.
func (e *InvalidLanguageTagError) Unwrap() error { return ErrInvalidLanguageTag }

func (v Boolean) String() string { return strconv.FormatBool(v.Value) }
func (v Integer) String() string { return strconv.FormatInt(v.Value, 10) }

func (v Decimal) String() string {
	if v.Value == nil {
		return "0.0"
	}
	s := v.Value.Text('f')
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (v Double) String() string {
	s := strconv.FormatFloat(v.Value, 'E', -1, 64)
	return strings.Replace(s, "E+", "E", 1)
}

func (v LanguageString) String() string {
	s := strconv.Quote(v.Value)
	if v.Language != nil {
		s += "@" + v.Language.String()
	}
	return s
}

func (v IRI) String() string {
	if v.Value == nil {
		return "<>"
	}
	return "<" + v.Value.String() + ">"
}

func (v *ValueConstructor) String() string {
	return v.TypeName.String() + "(" + v.Value.String() + ")"
}

func (v *ListOfValues) String() string {
	parts := make([]string, len(v.Values))
	for i, e := range v.Values {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (v ReferenceValue) String() string { return v.Ref.String() }

func (Boolean) isValue()           {}
func (Integer) isValue()           {}
func (Decimal) isValue()           {}
func (Double) isValue()            {}
func (LanguageString) isValue()    {}
func (IRI) isValue()               {}
func (*ValueConstructor) isValue() {}
func (*ListOfValues) isValue()     {}
func (ReferenceValue) isValue()    {}

func (Boolean) isSimpleValue()        {}
func (Integer) isSimpleValue()        {}
func (Decimal) isSimpleValue()        {}
func (Double) isSimpleValue()         {}
func (LanguageString) isSimpleValue() {}
func (IRI) isSimpleValue()            {}

// ParseDecimal parses a decimal literal.
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{Value: d}, nil
}

// NewLanguageTag validates tag as BCP-47.
func NewLanguageTag(tag string) (LanguageTag, error) {
	if _, err := language.Parse(tag); err != nil {
		return LanguageTag{}, &InvalidLanguageTagError{Value: tag, Err: err}
	}
	return LanguageTag{tag: tag}, nil
}

// NewUncheckedLanguageTag wraps tag without validation.
func NewUncheckedLanguageTag(tag string) LanguageTag {
	return LanguageTag{tag: tag}
}

func (t LanguageTag) String() string { return t.tag }

// IsValid reports whether the tag is well-formed BCP-47.
func (t LanguageTag) IsValid() bool {
	_, err := language.Parse(t.tag)
	return err == nil
}
