// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/sdml-io/sdml/internal/config"
	"github.com/sdml-io/sdml/internal/issue"
	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/load"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/store"
)

// stdinPath names standard input in --input.
const stdinPath = "-"

// session is one load of modules into a store, with diagnostics flowing to
// the configured reporter.
type session struct {
	app      *App
	settings *settings
	files    *source.Files
	store    *store.Cache
	resolver *load.FSResolver
	loader   *load.FSLoader
	reporter diag.Reporter
	sink     *diag.ReporterSink
}

func (a *App) newSession(s *settings) (*session, error) {
	catalog, err := load.DiscoverCatalog(a.workingDir, a.getenv)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load module catalog").
			WithResource(a.workingDir).
			WithIssue(issue.CatalogInvalidId).
			Wrap(err).
			BuildError()
	}
	if catalog != nil {
		s.logger.Debug("using catalog", "path", catalog.LoadedFrom())
	}

	resolverOpts := []load.ResolverOption{
		load.WithWorkingDir(a.workingDir),
		load.WithSearchPath(s.cfg.SearchPaths...),
	}
	if catalog != nil {
		resolverOpts = append(resolverOpts, load.WithCatalog(catalog))
	}
	if a.getenv != nil {
		resolverOpts = append(resolverOpts, load.WithEnv(a.getenv))
	}

	var reporter diag.Reporter
	switch s.cfg.Diagnostics.Format {
	case config.FormatCompact:
		reporter = diag.NewCompactReporter(a.stderr, s.reporter, diag.WithLogger(s.logger))
	default:
		reporter = diag.NewStandardReporter(a.stderr, s.reporter, diag.WithLogger(s.logger))
	}

	files := source.NewFiles()
	sink := diag.NewReporterSink(reporter, files)
	resolver := load.NewResolver(resolverOpts...)
	st := store.NewCache()
	if s.cfg.Load.Stdlib {
		st = st.WithStdlib()
	}

	return &session{
		app:      a,
		settings: s,
		files:    files,
		store:    st,
		resolver: resolver,
		reporter: reporter,
		sink:     sink,
		loader: load.NewLoader(
			load.WithResolver(resolver),
			load.WithFiles(files),
			load.WithSink(sink),
			load.WithLogger(s.logger),
		),
	}, nil
}

// failFast replaces the reporter with one that stops at the first enabled
// diagnostic.
func (s *session) failFast() {
	s.reporter = diag.NewBailoutReporter(s.settings.reporter, diag.WithLogger(s.settings.logger))
	s.sink.Reporter = s.reporter
}

// load loads the module named name, or the file at input when name is
// empty. "-" reads standard input.
func (s *session) load(ctx context.Context, name, input string, recursive bool) (*model.Module, error) {
	var (
		loaded model.Identifier
		err    error
	)
	switch {
	case input == stdinPath:
		loaded, err = s.loader.LoadFromReader(ctx, s.app.stdin, s.store, recursive)
	case input != "":
		loaded, err = s.loader.LoadFromFile(ctx, input, s.store, recursive)
	default:
		id, idErr := model.NewIdentifier(name)
		if idErr != nil {
			return nil, &ExitError{Code: ExitUsage, Err: issue.NewErrorContext().
				WithOperation("load module").
				WithResource(name).
				WithSuggestion("Module names start with a letter and contain letters, digits and single underscores").
				WithSuggestion("Use --input to load a module from a file path").
				Wrap(idErr).
				BuildError()}
		}
		loaded, err = s.loader.Load(ctx, id, source.NoFile, s.store, recursive)
	}

	resource := name
	if input != "" {
		resource = input
	}
	if loaded.IsEmpty() {
		return nil, wrapLoadError(err, resource)
	}
	m, ok := s.store.Get(loaded)
	if !ok {
		return nil, wrapLoadError(err, resource)
	}
	return m, wrapLoadError(err, resource)
}

// wrapLoadError attaches the matching explanation and suggestions to a
// load failure.
func wrapLoadError(err error, resource string) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	ec := issue.NewErrorContext().WithOperation("load module").WithResource(resource)
	switch {
	case errors.Is(err, load.ErrModuleNotFound):
		ec.WithIssue(issue.ModuleNotFoundId).
			WithSuggestion(fmt.Sprintf("Add the module's directory to %s or pass --path", load.PathEnv))
	case errors.Is(err, load.ErrModuleNameMismatch):
		ec.WithIssue(issue.ModuleNameMismatchId).
			WithSuggestion("Make the module declaration match the file name")
	case errors.Is(err, fs.ErrNotExist):
		ec.WithIssue(issue.FileNotFoundId).
			WithSuggestion("Check the path for typos")
	case errors.Is(err, fs.ErrPermission):
		ec.WithIssue(issue.PermissionDeniedId)
	default:
		if _, ok := diag.DiagnosticOf(err); ok {
			ec.WithIssue(issue.ModuleParseErrorId)
		}
	}
	return ec.Wrap(err).BuildError()
}

// reportError writes a load failure to stderr. Failures that were already
// reported as diagnostics are only repeated in verbose mode.
func (s *session) reportError(err error) {
	if _, ok := diag.DiagnosticOf(err); ok && !s.settings.verbose {
		return
	}
	fmt.Fprintln(s.app.stderr, formatErrorForDisplay(err, s.settings.verbose))
}

// done finishes the report for moduleName and converts reporter failures
// and counted errors into an exit status.
func (s *session) done(moduleName string, failed bool) error {
	if err := s.sink.Err(); err != nil {
		if d, ok := diag.DiagnosticOf(err); ok {
			s.settings.logger.Debug("stopped at first diagnostic", "code", d.Code.String())
		}
		return &ExitError{Code: ExitFailure, Err: err}
	}
	counters, err := s.reporter.Done(moduleName)
	if err != nil {
		return err
	}
	if failed || counters.HasErrors() {
		return &ExitError{Code: ExitFailure}
	}
	return nil
}
