// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"testing"
)

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in        string
		want      string
		namespace bool
		err       error
	}{
		{"http://example.com/ns#", "http://example.com/ns#", true, nil},
		{"http://example.com/ns/", "http://example.com/ns/", true, nil},
		{"http://example.com/ns", "http://example.com/ns", false, nil},
		{"http://example.com/ns#frag", "http://example.com/ns#frag", false, nil},
		{"http://example.com/ns/?q=1", "http://example.com/ns/?q=1", false, nil},
		{"relative/path", "", false, ErrRelativeURI},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			u, err := ParseURI(tt.in)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("ParseURI() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURI() error = %v", err)
			}
			if u.String() != tt.want {
				t.Errorf("String() = %q, want %q", u.String(), tt.want)
			}
			if u.IsNamespace() != tt.namespace {
				t.Errorf("IsNamespace() = %v, want %v", u.IsNamespace(), tt.namespace)
			}
		})
	}
}

func TestURI_Equal(t *testing.T) {
	t.Parallel()

	a := MustParseURI("http://example.com")
	b := MustParseURI("http://example.com/")
	if !a.Equal(b) {
		t.Error("http://example.com and http://example.com/ should be equal")
	}
	if a.Equal(MustParseURI("http://example.com/#")) {
		t.Error("an empty fragment is significant")
	}
	var none *URI
	if !none.Equal(nil) || none.Equal(a) {
		t.Error("nil handling")
	}
}

func TestURI_Resolve(t *testing.T) {
	t.Parallel()

	base := MustParseURI("https://example.org/rentals/")
	tests := []struct {
		ref  string
		want string
	}{
		{"vehicle#", "https://example.org/rentals/vehicle#"},
		{"entities/", "https://example.org/rentals/entities/"},
		{"../other/x", "https://example.org/other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			got, err := base.Resolve(tt.ref)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}
