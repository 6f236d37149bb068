// SPDX-License-Identifier: MPL-2.0

package load

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/source"

	"mvdan.cc/sh/v3/shell"
)

const (
	// PathEnv lists extra module directories, separated like PATH.
	PathEnv = "SDML_PATH"

	// CatalogEnv names a catalog file to use instead of searching for one.
	CatalogEnv = "SDML_CATALOG_FILE"

	// FileExtension is the preferred module file extension.
	FileExtension = "sdm"

	// FileExtensionLong is the alternate module file extension.
	FileExtensionLong = "sdml"
)

type (
	// Resolver maps a module name to the path of the file that holds it.
	// importedFrom is the path of the importing file, or "" for a root
	// module.
	Resolver interface {
		NameToResource(name model.Identifier, importedFrom string) (string, error)
	}

	// FSResolver resolves module names against a catalog and a directory
	// search path.
	FSResolver struct {
		catalog    *Catalog
		searchPath []string
		workingDir string
		getenv     func(string) string
	}

	// ResolverOption configures an FSResolver.
	ResolverOption func(*FSResolver)
)

// WithCatalog makes the resolver consult c before the search path.
func WithCatalog(c *Catalog) ResolverOption {
	return func(r *FSResolver) { r.catalog = c }
}

// WithSearchPath appends directories to the search path. Entries are
// shell-expanded like SDML_PATH entries.
func WithSearchPath(dirs ...string) ResolverOption {
	return func(r *FSResolver) { r.searchPath = append(r.searchPath, dirs...) }
}

// WithWorkingDir sets the directory searched last, instead of the process
// working directory.
func WithWorkingDir(dir string) ResolverOption {
	return func(r *FSResolver) { r.workingDir = dir }
}

// WithEnv sets the function used to read SDML_PATH and to expand
// variables in search path entries. It defaults to os.Getenv.
func WithEnv(getenv func(string) string) ResolverOption {
	return func(r *FSResolver) { r.getenv = getenv }
}

// NewResolver creates a file system resolver.
func NewResolver(opts ...ResolverOption) *FSResolver {
	r := &FSResolver{getenv: os.Getenv}
	for _, opt := range opts {
		opt(r)
	}
	if r.workingDir == "" {
		if wd, err := os.Getwd(); err == nil {
			r.workingDir = wd
		} else {
			r.workingDir = "."
		}
	}
	return r
}

// DiscoverCatalog loads the catalog named by SDML_CATALOG_FILE, or else the
// nearest sdml-catalog.json in dir or its parents. It returns nil and no
// error when there is no catalog.
func DiscoverCatalog(dir string, getenv func(string) string) (*Catalog, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if file := getenv(CatalogEnv); file != "" {
		return LoadCatalog(file, false)
	}
	c, err := LoadCatalog(dir, true)
	if errors.Is(err, ErrCatalogNotFound) {
		return nil, nil
	}
	return c, err
}

// Catalog returns the resolver's catalog, or nil.
func (r *FSResolver) Catalog() *Catalog { return r.catalog }

// SearchPath returns the directories searched for a module imported from
// importedFrom, in order: the importing file's directory, SDML_PATH, the
// configured directories and the working directory. Duplicates are removed.
func (r *FSResolver) SearchPath(importedFrom string) []string {
	var dirs []string
	if importedFrom != "" {
		dirs = append(dirs, filepath.Dir(importedFrom))
	}
	if env := r.getenv(PathEnv); env != "" {
		for _, entry := range filepath.SplitList(env) {
			if entry != "" {
				dirs = append(dirs, r.expand(entry))
			}
		}
	}
	for _, entry := range r.searchPath {
		dirs = append(dirs, r.expand(entry))
	}
	dirs = append(dirs, r.workingDir)

	seen := make(map[string]bool, len(dirs))
	result := dirs[:0]
	for _, d := range dirs {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			result = append(result, d)
		}
	}
	return result
}

// expand applies shell parameter and tilde expansion to a search path
// entry. An entry that fails to expand is used as written.
func (r *FSResolver) expand(entry string) string {
	fields, err := shell.Fields(entry, r.getenv)
	if err != nil || len(fields) == 0 {
		return entry
	}
	return strings.Join(fields, " ")
}

// Candidates returns the relative file names tried for a module, in order.
func Candidates(name model.Identifier) []string {
	n := name.String()
	return []string{
		n + "." + FileExtension,
		filepath.Join(n, n+"."+FileExtension),
		n + "." + FileExtensionLong,
		filepath.Join(n, n+"."+FileExtensionLong),
	}
}

// NameToResource implements Resolver. A catalog entry wins; otherwise each
// candidate file name is tried across the whole search path before the
// next candidate.
func (r *FSResolver) NameToResource(name model.Identifier, importedFrom string) (string, error) {
	if r.catalog != nil {
		if path, ok := r.catalog.ResolveLocalPath(name.String()); ok {
			return path, nil
		}
	}
	dirs := r.SearchPath(importedFrom)
	var searched []string
	for _, candidate := range Candidates(name) {
		for _, dir := range dirs {
			path := filepath.Join(dir, candidate)
			if fileExists(path) {
				return path, nil
			}
			searched = append(searched, path)
		}
	}
	return "", &ModuleNotFoundError{Name: name, ImportedFrom: importedFrom, File: source.NoFile, Searched: searched}
}
