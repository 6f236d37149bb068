// SPDX-License-Identifier: MPL-2.0

package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/parse"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/stdlib"
	"github.com/sdml-io/sdml/pkg/store"
	"github.com/sdml-io/sdml/pkg/syntax"

	"github.com/charmbracelet/log"
)

// StdinName is the file name used for modules read by LoadFromReader.
const StdinName = "<stdin>"

type (
	// Loader loads a module, and optionally its imports, into a store.
	Loader interface {
		// Load is a no-op returning name when st already holds the module.
		// importedBy is the file of the importing module, or source.NoFile.
		Load(ctx context.Context, name model.Identifier, importedBy source.FileID, st store.ModuleStore, recursive bool) (model.Identifier, error)
	}

	// FSLoader reads modules from the file system.
	FSLoader struct {
		resolver     Resolver
		grammar      syntax.Grammar
		files        *source.Files
		sink         diag.Sink
		logger       *log.Logger
		saveComments bool

		paths       map[source.FileID]string
		moduleFiles map[string]source.FileID
		inProgress  map[string]bool
	}

	// LoaderOption configures an FSLoader.
	LoaderOption func(*FSLoader)

	catalogProvider interface {
		Catalog() *Catalog
	}
)

var _ Loader = (*FSLoader)(nil)

// WithResolver sets the resolver. The default is NewResolver().
func WithResolver(r Resolver) LoaderOption {
	return func(l *FSLoader) { l.resolver = r }
}

// WithGrammar sets the concrete syntax producer. The default is
// syntax.NewParser().
func WithGrammar(g syntax.Grammar) LoaderOption {
	return func(l *FSLoader) { l.grammar = g }
}

// WithFiles registers loaded sources in files instead of a private registry.
func WithFiles(files *source.Files) LoaderOption {
	return func(l *FSLoader) { l.files = files }
}

// WithSink sends parse and load diagnostics to sink.
func WithSink(sink diag.Sink) LoaderOption {
	return func(l *FSLoader) { l.sink = sink }
}

// WithLogger sets the logger used to trace resolution and loading.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *FSLoader) { l.logger = logger }
}

// WithComments controls whether line comments are kept in loaded modules.
func WithComments(save bool) LoaderOption {
	return func(l *FSLoader) { l.saveComments = save }
}

// NewLoader creates a file system loader.
func NewLoader(opts ...LoaderOption) *FSLoader {
	l := &FSLoader{
		sink:         diag.Discard,
		saveComments: true,
		paths:        make(map[source.FileID]string),
		moduleFiles:  make(map[string]source.FileID),
		inProgress:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.resolver == nil {
		l.resolver = NewResolver()
	}
	if l.grammar == nil {
		l.grammar = syntax.NewParser()
	}
	if l.files == nil {
		l.files = source.NewFiles()
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// Files returns the registry holding every source read by the loader.
func (l *FSLoader) Files() *source.Files { return l.files }

// File returns the source file a module was loaded from.
func (l *FSLoader) File(name model.Identifier) (source.FileID, bool) {
	id, ok := l.moduleFiles[name.String()]
	return id, ok
}

// Source returns the text a module was loaded from.
func (l *FSLoader) Source(name model.Identifier) ([]byte, bool) {
	id, ok := l.File(name)
	if !ok {
		return nil, false
	}
	return l.files.Source(id), true
}

// Path returns the file system path of a loaded file, or "" for sources
// not read from a file.
func (l *FSLoader) Path(id source.FileID) string { return l.paths[id] }

// Load implements Loader.
func (l *FSLoader) Load(ctx context.Context, name model.Identifier, importedBy source.FileID, st store.ModuleStore, recursive bool) (model.Identifier, error) {
	return l.load(ctx, name, importedBy, nil, st, recursive)
}

func (l *FSLoader) load(ctx context.Context, name model.Identifier, importedBy source.FileID, at *source.Span, st store.ModuleStore, recursive bool) (model.Identifier, error) {
	if err := ctx.Err(); err != nil {
		return model.Identifier{}, err
	}
	if st.Contains(name) || l.inProgress[name.String()] {
		return name, nil
	}
	if m, ok := stdlib.Module(name); ok {
		l.logger.Debug("using library module", "module", name)
		st.Insert(m)
		return name, nil
	}

	importedFrom := l.paths[importedBy]
	path, err := l.resolver.NameToResource(name, importedFrom)
	if err != nil {
		var nf *ModuleNotFoundError
		if errors.As(err, &nf) {
			if importedBy != source.NoFile {
				nf.File, nf.Span = importedBy, at
			}
			l.sink.Report(nf.AsDiagnostic())
		}
		return model.Identifier{}, err
	}
	l.logger.Debug("resolved module", "module", name, "path", path)

	l.inProgress[name.String()] = true
	defer delete(l.inProgress, name.String())

	m, err := l.readFile(ctx, path)
	if err != nil {
		return model.Identifier{}, err
	}
	if !m.Name.Equal(name) {
		mismatch := &ModuleNameMismatchError{Requested: name, Declared: m.Name, Path: path, File: m.File}
		l.sink.Report(mismatch.AsDiagnostic())
		return model.Identifier{}, mismatch
	}
	return l.insert(ctx, m, st, recursive)
}

// LoadFromFile loads the module held in path, whatever its name.
func (l *FSLoader) LoadFromFile(ctx context.Context, path string, st store.ModuleStore, recursive bool) (model.Identifier, error) {
	if err := ctx.Err(); err != nil {
		return model.Identifier{}, err
	}
	m, err := l.readFile(ctx, path)
	if err != nil {
		return model.Identifier{}, err
	}
	if st.Contains(m.Name) {
		return m.Name, nil
	}
	return l.insert(ctx, m, st, recursive)
}

// LoadFromReader loads a module from r. No base URI is inferred for it.
func (l *FSLoader) LoadFromReader(ctx context.Context, r io.Reader, st store.ModuleStore, recursive bool) (model.Identifier, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return model.Identifier{}, fmt.Errorf("failed to read module source: %w", err)
	}
	m, err := l.parse(ctx, StdinName, src)
	if err != nil {
		return model.Identifier{}, err
	}
	if st.Contains(m.Name) {
		return m.Name, nil
	}
	return l.insert(ctx, m, st, recursive)
}

func (l *FSLoader) readFile(ctx context.Context, path string) (*model.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file %s: %w", path, err)
	}
	m, err := l.parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	if m.BaseURI == nil {
		if base, ok := l.inferBaseURI(m.Name, path); ok {
			l.logger.Debug("inferred base URI", "module", m.Name, "base", base)
			m.WithBaseURI(base)
		}
	}
	return m, nil
}

func (l *FSLoader) parse(ctx context.Context, name string, src []byte) (*model.Module, error) {
	id := l.files.Add(name, src)
	if name != StdinName {
		l.paths[id] = name
	}
	tree, err := l.grammar.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	m, err := parse.Parse(ctx, tree, src, id,
		parse.WithSink(l.sink),
		parse.WithLogger(l.logger),
		parse.WithComments(l.saveComments))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// inferBaseURI uses the catalog URL for the module when there is one and
// the file URL of path otherwise. The file URL ends in an empty fragment
// so that it names a namespace.
func (l *FSLoader) inferBaseURI(name model.Identifier, path string) (*model.URI, bool) {
	if cp, ok := l.resolver.(catalogProvider); ok && cp.Catalog() != nil {
		return cp.Catalog().ResolveURI(name.String())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		l.logger.Warn("could not construct a base URI", "path", path, "error", err)
		return nil, false
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	base, err := model.ParseURI(u.String() + "#")
	if err != nil {
		l.logger.Warn("could not construct a base URI", "path", path, "error", err)
		return nil, false
	}
	return base, true
}

// insert stores m and, when recursive, loads its imports in declaration
// order.
func (l *FSLoader) insert(ctx context.Context, m *model.Module, st store.ModuleStore, recursive bool) (model.Identifier, error) {
	st.Insert(m)
	l.moduleFiles[m.Name.String()] = m.File
	l.logger.Debug("loaded module", "module", m.Name, "file", l.files.Name(m.File))
	if !recursive {
		return m.Name, nil
	}

	l.inProgress[m.Name.String()] = true
	defer delete(l.inProgress, m.Name.String())

	for _, dep := range m.ImportedModules() {
		if err := ctx.Err(); err != nil {
			return m.Name, err
		}
		if st.Contains(dep) || l.inProgress[dep.String()] {
			continue
		}
		if _, err := l.load(ctx, dep, m.File, dep.SourceSpan(), st, true); err != nil {
			return m.Name, fmt.Errorf("loading %s imported by %s: %w", dep, m.Name, err)
		}
	}
	return m.Name, nil
}
