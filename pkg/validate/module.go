// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
)

func (v *validator) module() {
	m := v.top
	span := m.SourceSpan()
	if m.Name.SourceSpan() != nil {
		span = m.Name.SourceSpan()
	}

	v.identifier(m.Name)
	if m.BaseURI != nil && !m.BaseURI.IsNamespace() {
		v.report(diag.NewInvalidModuleBaseURL(v.file, span, m.BaseURI.String()))
	}
	if m.VersionURI != nil {
		if !m.VersionURI.IsNamespace() {
			v.report(diag.NewInvalidModuleVersionURL(v.file, span, m.VersionURI.String()))
		}
		if m.VersionInfo == "" {
			v.report(diag.NewModuleVersionInfoEmpty(v.file, span))
		}
	}

	for _, stmt := range m.Body.Imports() {
		for _, imp := range stmt.Imports {
			v.importEntry(imp)
		}
	}
	v.annotations(m.Body.Annotations())
	for _, def := range m.Body.Definitions() {
		v.definition(def)
	}

	if !model.IsStructurallyComplete(m) {
		v.report(diag.NewIncompleteModule(v.file, span, m.Name.String()))
	}
}

func (v *validator) importEntry(imp model.Import) {
	span := imp.SourceSpan()
	module := imp.ModuleName()
	if !v.moduleKnown(module) {
		v.report(diag.NewImportedModuleNotFound(v.file, span, module.String()))
		return
	}

	switch i := imp.(type) {
	case *model.ModuleImport:
		if i.VersionURI == nil {
			return
		}
		imported, ok := v.st.Get(module)
		if !ok {
			return
		}
		switch {
		case imported.VersionURI == nil:
			v.report(diag.NewModuleVersionNotFound(v.file, span, i.VersionURI.String(), module.String()))
		case !imported.VersionURI.Equal(i.VersionURI):
			v.report(diag.NewModuleVersionMismatch(v.file, span, i.VersionURI.String(), imported.VersionURI.String()))
		}
	case *model.MemberImport:
		if _, ok := v.resolve(i.Name); !ok {
			v.report(diag.NewDefinitionNotFound(v.file, span, i.Name.String()))
		}
	}
}

// identifier checks the lexical form of a declared name.
func (v *validator) identifier(id model.Identifier) {
	switch {
	case !id.IsValid():
		v.report(diag.NewInvalidIdentifier(v.file, id.SourceSpan(), id.String()))
	case id.IsDoubleUnderscored():
		v.report(diag.NewDoubleUnderscoredIdentifier(v.file, id.SourceSpan(), id.String()))
	}
}
