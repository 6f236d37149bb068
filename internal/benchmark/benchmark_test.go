// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdml-io/sdml/internal/config"
	"github.com/sdml-io/sdml/internal/dag"
	"github.com/sdml-io/sdml/internal/testutil"
	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/load"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/parse"
	"github.com/sdml-io/sdml/pkg/printer"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/store"
	"github.com/sdml-io/sdml/pkg/syntax"
	"github.com/sdml-io/sdml/pkg/validate"
)

// sampleModule exercises most definition kinds.
const sampleModule = `module rentals <https://example.com/rentals/> is
  import [ xsd rdfs skos ]

  @rdfs:label = "Vehicle rentals"@en
  @skos:definition = "Rental of vehicles to customers"@en

  datatype VIN <- string is
    @xsd:minLength = 17
    @xsd:maxLength = 17
  end

  datatype Price <- xsd:decimal is
    @xsd:minInclusive = 0
  end

  enum Status of
    Reserved
    Active
    Returned
  end

  entity Vehicle is
    identity vin -> VIN
    model -> string
    daily -> Price
    status -> Status
  end

  entity Customer is
    identity id -> integer
    name -> string {1..}
    email -> string {0..1}
  end

  structure Period is
    from -> xsd:date
    until -> xsd:date
  end

  entity Booking is
    identity id -> integer
    vehicle -> Vehicle
    customer -> Customer
    period -> Period
  end

  event Returned source Booking is
    at -> xsd:dateTime
  end

  union Party of
    Customer
    Vehicle as Asset
  end
end
`

// configFile is a representative configuration file.
const configFile = `search_paths: ["/models", "~/sdml"]

diagnostics: {
	level:  "warning"
	format: "compact"
	color:  "never"
}

load: {
	recursive: true
	stdlib:    true
}

printer: {
	indent: 4
}
`

// chain returns n modules where each imports the next.
func chain(n int) map[string]string {
	modules := make(map[string]string, n)
	for i := range n {
		var b strings.Builder
		fmt.Fprintf(&b, "module m%d is\n", i)
		if i+1 < n {
			fmt.Fprintf(&b, "  import m%d\n\n", i+1)
		}
		fmt.Fprintf(&b, "  entity E%d is\n    identity id -> integer\n", i)
		if i+1 < n {
			fmt.Fprintf(&b, "    next -> m%d:E%d\n", i+1, i+1)
		}
		b.WriteString("  end\nend\n")
		modules[fmt.Sprintf("m%d", i)] = b.String()
	}
	return modules
}

// largeModule returns a module with n entities referring to each other.
func largeModule(n int) string {
	var b strings.Builder
	b.WriteString("module large is\n  import xsd\n")
	for i := range n {
		fmt.Fprintf(&b, "\n  entity E%d is\n    identity id -> integer\n    label -> string\n", i)
		if i > 0 {
			fmt.Fprintf(&b, "    previous -> E%d {0..1}\n", i-1)
		}
		b.WriteString("  end\n")
	}
	b.WriteString("end\n")
	return b.String()
}

func mustParse(b *testing.B, text string) *model.Module {
	b.Helper()
	m, err := parse.ParseSource([]byte(text), source.FileID(0), syntax.NewParser(), diag.Discard)
	if err != nil {
		b.Fatalf("ParseSource failed: %v", err)
	}
	return m
}

// BenchmarkParse benchmarks parsing a typical module.
func BenchmarkParse(b *testing.B) {
	src := []byte(sampleModule)
	grammar := syntax.NewParser()

	b.SetBytes(int64(len(src)))
	for b.Loop() {
		if _, err := parse.ParseSource(src, source.FileID(0), grammar, diag.Discard); err != nil {
			b.Fatalf("ParseSource failed: %v", err)
		}
	}
}

// BenchmarkParseLarge benchmarks parsing a module with many definitions.
func BenchmarkParseLarge(b *testing.B) {
	src := []byte(largeModule(500))
	grammar := syntax.NewParser()

	b.SetBytes(int64(len(src)))
	for b.Loop() {
		if _, err := parse.ParseSource(src, source.FileID(0), grammar, diag.Discard); err != nil {
			b.Fatalf("ParseSource failed: %v", err)
		}
	}
}

// BenchmarkLoad benchmarks resolving and loading a chain of imports from
// disk into a fresh store.
func BenchmarkLoad(b *testing.B) {
	dir := b.TempDir()
	for name, text := range chain(20) {
		testutil.WriteFile(b, filepath.Join(dir, name+testutil.ModuleExt), text)
	}
	root := model.MustIdentifier("m0")

	for b.Loop() {
		loader := load.NewLoader(load.WithResolver(load.NewResolver(load.WithWorkingDir(dir))))
		st := store.NewCache().WithStdlib()
		if _, err := loader.Load(b.Context(), root, source.NoFile, st, true); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkValidateModule benchmarks validating one module.
func BenchmarkValidateModule(b *testing.B) {
	m := mustParse(b, sampleModule)
	st := store.NewCache().WithStdlib()
	st.Insert(m)

	for b.Loop() {
		validate.Module(m, st, diag.Discard, validate.Options{})
	}
}

// BenchmarkValidateAll benchmarks concurrent validation of every module in
// a store.
func BenchmarkValidateAll(b *testing.B) {
	st := store.NewCache().WithStdlib()
	for _, text := range chain(50) {
		st.Insert(mustParse(b, text))
	}

	for b.Loop() {
		if err := validate.All(b.Context(), st, diag.Discard, validate.Options{}); err != nil {
			b.Fatalf("All failed: %v", err)
		}
	}
}

// BenchmarkImportGraph benchmarks building the import graph and ordering
// it for loading.
func BenchmarkImportGraph(b *testing.B) {
	var modules []*model.Module
	for _, text := range chain(200) {
		modules = append(modules, mustParse(b, text))
	}

	for b.Loop() {
		if _, err := dag.Imports(modules, false).LoadOrder(); err != nil {
			b.Fatalf("LoadOrder failed: %v", err)
		}
	}
}

// BenchmarkPrint benchmarks writing a module in canonical form.
func BenchmarkPrint(b *testing.B) {
	m := mustParse(b, sampleModule)

	for b.Loop() {
		if err := printer.Write(io.Discard, m, printer.Options{Indent: 2}); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}
}

// BenchmarkConfigLoad benchmarks decoding and validating the CUE
// configuration file.
func BenchmarkConfigLoad(b *testing.B) {
	path := filepath.Join(b.TempDir(), "config.cue")
	testutil.WriteFile(b, path, configFile)
	provider := config.NewProvider()
	env := testutil.Env(nil)

	for b.Loop() {
		if _, err := provider.Load(b.Context(), config.LoadOptions{ConfigFilePath: path, Getenv: env}); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkPipeline benchmarks loading, validating and printing a model
// the way "sdml validate --all" does.
func BenchmarkPipeline(b *testing.B) {
	dir := b.TempDir()
	testutil.WriteFile(b, filepath.Join(dir, "rentals"+testutil.ModuleExt), sampleModule)
	root := model.MustIdentifier("rentals")

	for b.Loop() {
		files := source.NewFiles()
		collector := diag.NewCollector()
		loader := load.NewLoader(
			load.WithResolver(load.NewResolver(load.WithWorkingDir(dir))),
			load.WithFiles(files),
			load.WithSink(collector),
		)
		st := store.NewCache().WithStdlib()
		if _, err := loader.Load(b.Context(), root, source.NoFile, st, true); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
		if err := validate.All(b.Context(), st, collector, validate.Options{}); err != nil {
			b.Fatalf("All failed: %v", err)
		}
		m, _ := st.Get(root)
		if err := printer.Write(io.Discard, m, printer.Options{Indent: 2}); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}
}
