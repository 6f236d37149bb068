// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/stdlib"
	"github.com/sdml-io/sdml/pkg/store"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

type (
	// Options tunes validation.
	Options struct {
		// CheckConstraints reports formal constraints as not validated and
		// checks their variables are bound.
		CheckConstraints bool

		// Logger traces validation at debug level. Nil discards.
		Logger *log.Logger
	}

	// validator checks one module. It only reads the store.
	validator struct {
		top    *model.Module
		st     store.ModuleStore
		sink   diag.Sink
		opts   Options
		file   source.FileID
		logger *log.Logger
	}
)

// library holds the built-in modules so references to them resolve even
// when the store was created without them.
var library = sync.OnceValue(func() map[string]*model.Module {
	modules := make(map[string]*model.Module)
	for _, m := range stdlib.Modules() {
		modules[m.Name.String()] = m
	}
	return modules
})

// Module validates top against the modules in st, reporting to sink.
// Library modules are not validated.
func Module(top *model.Module, st store.ModuleStore, sink diag.Sink, opts Options) {
	if top == nil || top.Library {
		return
	}
	v := &validator{top: top, st: st, sink: sink, opts: opts, file: top.File, logger: opts.Logger}
	if v.logger == nil {
		v.logger = log.New(io.Discard)
	}
	v.logger.Debug("validating module", "module", top.Name)
	v.module()
}

// All validates every non-library module of st concurrently. Each module's
// diagnostics are collected separately and forwarded to sink in store
// order.
func All(ctx context.Context, st store.ModuleStore, sink diag.Sink, opts Options) error {
	var modules []*model.Module
	for _, m := range st.Modules() {
		if !m.Library {
			modules = append(modules, m)
		}
	}

	collectors := make([]*diag.Collector, len(modules))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range modules {
		collectors[i] = diag.NewCollector()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			Module(m, st, collectors[i], opts)
			return nil
		})
	}
	err := g.Wait()
	for _, c := range collectors {
		c.ReplayTo(sink)
	}
	return err
}

// IsIncomplete reports whether def may still be being authored: it has an
// unknown type, is a forward declaration, or refers to a module that is
// not loaded.
func IsIncomplete(def model.Definition, st store.ModuleStore) bool {
	if model.HasUnknownType(def) {
		return true
	}
	for _, ref := range model.ReferencedTypes(def) {
		if q, ok := ref.(model.QualifiedIdentifier); ok && !moduleKnown(st, q.Module()) {
			return true
		}
	}
	return false
}

func moduleKnown(st store.ModuleStore, name model.Identifier) bool {
	if st.Contains(name) {
		return true
	}
	_, ok := library()[name.String()]
	return ok
}

func (v *validator) report(d diag.Diagnostic) {
	v.sink.Report(d)
}

func (v *validator) moduleKnown(name model.Identifier) bool {
	return moduleKnown(v.st, name)
}

// resolve finds the definition ref names, relative to the module being
// validated.
func (v *validator) resolve(ref model.IdentifierReference) (model.Definition, bool) {
	return v.resolveQualified(model.Qualified(ref, v.top.Name))
}

func (v *validator) resolveQualified(q model.QualifiedIdentifier) (model.Definition, bool) {
	if q.Module().Equal(v.top.Name) {
		return v.top.Body.Definition(q.Member())
	}
	if def, ok := v.st.Resolve(q); ok {
		return def, true
	}
	if v.st.Contains(q.Module()) {
		return nil, false
	}
	if m, ok := library()[q.Module().String()]; ok {
		return m.Body.Definition(q.Member())
	}
	return nil, false
}
