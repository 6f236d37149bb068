// SPDX-License-Identifier: MPL-2.0

package load

import (
	"errors"
	"fmt"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/source"
)

var (
	// ErrModuleNotFound is returned when no resource exists for a module name.
	ErrModuleNotFound = errors.New("module not found")

	// ErrModuleNameMismatch is returned when a resource declares a module
	// other than the one requested.
	ErrModuleNameMismatch = errors.New("module name mismatch")
)

type (
	// ModuleNotFoundError reports a module name the resolver could not map
	// to a resource.
	ModuleNotFoundError struct {
		Name model.Identifier
		// ImportedFrom is the path of the importing file, empty for a root load.
		ImportedFrom string
		// File and Span locate the import statement. File is source.NoFile
		// for a root load.
		File source.FileID
		Span *source.Span
		// Searched lists the candidate files that were tried.
		Searched []string
	}

	// ModuleNameMismatchError reports a resource whose module declaration
	// names a different module.
	ModuleNameMismatchError struct {
		Requested model.Identifier
		Declared  model.Identifier
		Path      string
		File      source.FileID
	}
)

func (e *ModuleNotFoundError) Error() string {
	if e.ImportedFrom != "" {
		return fmt.Sprintf("module %s imported from %s not found", e.Name, e.ImportedFrom)
	}
	return fmt.Sprintf("module %s not found", e.Name)
}

func (e *ModuleNotFoundError) Unwrap() error { return ErrModuleNotFound }

// AsDiagnostic converts the error to E0100, or E0101 for an import.
func (e *ModuleNotFoundError) AsDiagnostic() diag.Diagnostic {
	if e.File != source.NoFile {
		return diag.NewImportedModuleNotFound(e.File, e.Span, e.Name.String())
	}
	return diag.NewModuleNotFound(e.Name.String())
}

func (e *ModuleNameMismatchError) Error() string {
	return fmt.Sprintf("%s: requested module %s but found module %s", e.Path, e.Requested, e.Declared)
}

func (e *ModuleNameMismatchError) Unwrap() error { return ErrModuleNameMismatch }

// AsDiagnostic converts the error to E0100 carrying both names.
func (e *ModuleNameMismatchError) AsDiagnostic() diag.Diagnostic {
	return diag.NewModuleNameMismatch(e.Requested.String(), e.Declared.String(), e.File, e.Declared.SourceSpan())
}
