// SPDX-License-Identifier: MPL-2.0

package model

import "github.com/sdml-io/sdml/pkg/source"

type (
	// ImportStatement is a single import keyword with one or more imports.
	ImportStatement struct {
		Spanned
		Commented
		Imports []Import
	}

	// Import is either a *ModuleImport or a *MemberImport.
	Import interface {
		SourceSpan() *source.Span
		String() string
		// ModuleName returns the module the import depends on.
		ModuleName() Identifier
		isImport()
	}

	// ModuleImport imports a whole module, optionally pinned to a version URI.
	ModuleImport struct {
		Spanned
		Name       Identifier
		VersionURI *URI
	}

	// MemberImport imports a single definition from another module.
	MemberImport struct {
		Spanned
		Name QualifiedIdentifier
	}
)

func (i *ModuleImport) String() string { return i.Name.String() }

// ModuleName returns the imported module.
func (i *ModuleImport) ModuleName() Identifier { return i.Name }

func (*ModuleImport) isImport() {}

func (i *MemberImport) String() string { return i.Name.String() }

// ModuleName returns the module that owns the imported member.
func (i *MemberImport) ModuleName() Identifier { return i.Name.Module() }

func (*MemberImport) isImport() {}
