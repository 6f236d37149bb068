// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"testing"
)

func TestNewIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "lower", input: "example", valid: true},
		{name: "upper camel", input: "CustomerAccount", valid: true},
		{name: "digits", input: "v2Api", valid: true},
		{name: "underscores", input: "first_name", valid: true},
		{name: "double underscore", input: "first__name", valid: true},
		{name: "unicode", input: "Größe", valid: true},
		{name: "leading digit", input: "2fast", valid: false},
		{name: "leading underscore", input: "_hidden", valid: false},
		{name: "trailing underscore", input: "name_", valid: false},
		{name: "dash", input: "first-name", valid: false},
		{name: "empty", input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, err := NewIdentifier(tt.input)
			if tt.valid {
				if err != nil {
					t.Fatalf("NewIdentifier(%q) unexpected error: %v", tt.input, err)
				}
				if id.String() != tt.input {
					t.Errorf("String() = %q, want %q", id.String(), tt.input)
				}
				return
			}
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("NewIdentifier(%q) error = %v, want ErrInvalidIdentifier", tt.input, err)
			}
		})
	}
}

func TestIdentifier_IsDoubleUnderscored(t *testing.T) {
	t.Parallel()
	if !NewUncheckedIdentifier("a__b").IsDoubleUnderscored() {
		t.Error("a__b should be double underscored")
	}
	if NewUncheckedIdentifier("a_b").IsDoubleUnderscored() {
		t.Error("a_b should not be double underscored")
	}
}

func TestParseQualifiedIdentifier(t *testing.T) {
	t.Parallel()

	q, err := ParseQualifiedIdentifier("xsd:string")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Module().String() != "xsd" || q.Member().String() != "string" {
		t.Errorf("got module=%q member=%q", q.Module(), q.Member())
	}
	if q.String() != "xsd:string" {
		t.Errorf("String() = %q, want xsd:string", q.String())
	}

	for _, bad := range []string{"xsd", "xsd:", ":string", "1x:y"} {
		if _, err := ParseQualifiedIdentifier(bad); !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("ParseQualifiedIdentifier(%q) error = %v, want ErrInvalidIdentifier", bad, err)
		}
	}
}

func TestQualified(t *testing.T) {
	t.Parallel()
	in := MustIdentifier("home")

	got := Qualified(MustIdentifier("Thing"), in)
	if got.String() != "home:Thing" {
		t.Errorf("Qualified(Thing) = %q, want home:Thing", got)
	}
	got = Qualified(NewQualifiedIdentifier(MustIdentifier("xsd"), MustIdentifier("int")), in)
	if got.String() != "xsd:int" {
		t.Errorf("Qualified(xsd:int) = %q, want xsd:int", got)
	}
	if ReferenceMember(got).String() != "int" {
		t.Errorf("ReferenceMember() = %q, want int", ReferenceMember(got))
	}
}
