// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrRelativeURI is returned when a module URI is not absolute.
var ErrRelativeURI = errors.New("URI is not absolute")

// URI is an absolute URI used as a module base or version URI. Unlike
// url.URL it keeps an empty trailing fragment, as in http://example.com/ns#,
// which is how many vocabularies spell their namespace.
type URI struct {
	u             url.URL
	emptyFragment bool
}

// ParseURI parses an absolute URI.
func ParseURI(s string) (*URI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%q: %w", s, ErrRelativeURI)
	}
	return &URI{u: *u, emptyFragment: u.Fragment == "" && strings.HasSuffix(s, "#")}, nil
}

// MustParseURI is like ParseURI but panics on error.
func MustParseURI(s string) *URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

// FromURL wraps a copy of u.
func FromURL(u *url.URL) *URI {
	return &URI{u: *u}
}

// URL returns a copy of the underlying URL; an empty fragment is lost.
func (u *URI) URL() *url.URL {
	clone := u.u
	return &clone
}

func (u *URI) String() string {
	s := u.u.String()
	if u.emptyFragment {
		s += "#"
	}
	return s
}

// Scheme returns the URI scheme.
func (u *URI) Scheme() string { return u.u.Scheme }

// IsNamespace reports whether other names can be appended to the URI: its
// path ends in "/" with no query or fragment, or it ends in an empty fragment.
func (u *URI) IsNamespace() bool {
	if u.emptyFragment {
		return true
	}
	return strings.HasSuffix(u.u.Path, "/") && u.u.RawQuery == "" && u.u.Fragment == ""
}

// Normalize returns u with an empty path replaced by "/", so that
// http://example.com and http://example.com/ are the same namespace.
func (u *URI) Normalize() *URI {
	n := *u
	if n.u.Path == "" && n.u.Opaque == "" && n.u.Host != "" {
		n.u.Path = "/"
	}
	return &n
}

// Equal compares the normalized forms of two URIs.
func (u *URI) Equal(other *URI) bool {
	if u == nil || other == nil {
		return u == nil && other == nil
	}
	return u.Normalize().String() == other.Normalize().String()
}

// Resolve resolves ref against u. A ref ending in "#" keeps its empty
// fragment.
func (u *URI) Resolve(ref string) (*URI, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	resolved := u.u.ResolveReference(r)
	return &URI{u: *resolved, emptyFragment: resolved.Fragment == "" && strings.HasSuffix(ref, "#")}, nil
}
