// SPDX-License-Identifier: MPL-2.0

package model

import "github.com/sdml-io/sdml/pkg/source"

type (
	// Module is the root of the abstract model. Once inserted into a store it
	// is treated as immutable.
	Module struct {
		Spanned
		Commented
		Name        Identifier
		BaseURI     *URI
		VersionInfo string
		VersionURI  *URI
		Body        *ModuleBody

		// File is the source the module was parsed from, or source.NoFile.
		File source.FileID
		// Library marks built-in modules that are never validated or printed
		// as user sources.
		Library bool
	}

	// ModuleBody holds a module's imports, annotations and definitions in
	// declaration order.
	ModuleBody struct {
		Spanned
		Commented
		imports     []*ImportStatement
		annotations []Annotation
		definitions []Definition
		byName      map[string]Definition
	}
)

// NewModule creates a module with an empty body.
func NewModule(name Identifier) *Module {
	return &Module{Name: name, Body: NewModuleBody(), File: source.NoFile}
}

// WithBaseURI sets the base URI. An empty path is normalized to "/" so that
// http://example.com and http://example.com/ are the same namespace.
func (m *Module) WithBaseURI(u *URI) *Module {
	if u == nil {
		m.BaseURI = nil
		return m
	}
	m.BaseURI = u.Normalize()
	return m
}

// WithVersion sets the version information and URI; either may be empty.
func (m *Module) WithVersion(info string, uri *URI) *Module {
	m.VersionInfo = info
	m.VersionURI = uri
	return m
}

// IsVersioned reports whether the module declares version information or a
// version URI.
func (m *Module) IsVersioned() bool {
	return m.VersionInfo != "" || m.VersionURI != nil
}

// ImportedModules returns the names of every module this one imports,
// including the module part of member imports, first occurrence wins.
func (m *Module) ImportedModules() []Identifier {
	return m.Body.ImportedModules()
}

// NewModuleBody creates an empty body.
func NewModuleBody() *ModuleBody {
	return &ModuleBody{byName: make(map[string]Definition)}
}

// IsEmpty reports whether the body has no imports, annotations or definitions.
func (b *ModuleBody) IsEmpty() bool {
	return len(b.imports) == 0 && len(b.annotations) == 0 && len(b.definitions) == 0
}

// AddImport appends an import statement.
func (b *ModuleBody) AddImport(stmt *ImportStatement) {
	b.imports = append(b.imports, stmt)
}

// Imports returns the import statements in declaration order.
func (b *ModuleBody) Imports() []*ImportStatement { return b.imports }

// AddAnnotation appends an annotation.
func (b *ModuleBody) AddAnnotation(a Annotation) {
	b.annotations = append(b.annotations, a)
}

// Annotations returns the module-level annotations in declaration order.
func (b *ModuleBody) Annotations() []Annotation { return b.annotations }

// AddDefinition appends def. A definition whose name is already taken is
// kept in declaration order but the name lookup keeps the first one.
func (b *ModuleBody) AddDefinition(def Definition) {
	b.definitions = append(b.definitions, def)
	name := def.DefinitionName().String()
	if _, exists := b.byName[name]; !exists {
		b.byName[name] = def
	}
}

// Definitions returns every definition in declaration order.
func (b *ModuleBody) Definitions() []Definition { return b.definitions }

// Definition looks a definition up by name.
func (b *ModuleBody) Definition(name Identifier) (Definition, bool) {
	def, ok := b.byName[name.String()]
	return def, ok
}

// HasDefinition reports whether a definition named name exists.
func (b *ModuleBody) HasDefinition(name Identifier) bool {
	_, ok := b.byName[name.String()]
	return ok
}

// DefinitionNames returns the unique definition names in declaration order.
func (b *ModuleBody) DefinitionNames() []Identifier {
	seen := make(map[string]bool, len(b.definitions))
	names := make([]Identifier, 0, len(b.definitions))
	for _, def := range b.definitions {
		name := def.DefinitionName()
		if seen[name.String()] {
			continue
		}
		seen[name.String()] = true
		names = append(names, name)
	}
	return names
}

// ImportedModules returns the distinct module names referenced by import
// statements, in declaration order.
func (b *ModuleBody) ImportedModules() []Identifier {
	seen := make(map[string]bool)
	var names []Identifier
	for _, stmt := range b.imports {
		for _, imp := range stmt.Imports {
			name := imp.ModuleName()
			if seen[name.String()] {
				continue
			}
			seen[name.String()] = true
			names = append(names, name)
		}
	}
	return names
}

// ImportedDefinitions returns the distinct member imports in declaration order.
func (b *ModuleBody) ImportedDefinitions() []QualifiedIdentifier {
	seen := make(map[string]bool)
	var names []QualifiedIdentifier
	for _, stmt := range b.imports {
		for _, imp := range stmt.Imports {
			mi, ok := imp.(*MemberImport)
			if !ok || seen[mi.Name.String()] {
				continue
			}
			seen[mi.Name.String()] = true
			names = append(names, mi.Name)
		}
	}
	return names
}

// IsImported reports whether the body imports the named module, either
// directly or through a member import.
func (b *ModuleBody) IsImported(module Identifier) bool {
	for _, name := range b.ImportedModules() {
		if name.Equal(module) {
			return true
		}
	}
	return false
}
