// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sdml-io/sdml/internal/config"
	"github.com/sdml-io/sdml/internal/issue"
	"github.com/sdml-io/sdml/internal/testutil"
	"github.com/sdml-io/sdml/pkg/diag"

	"github.com/charmbracelet/fang"
)

const (
	vehicleModule = `module vehicle is
  import xsd

  datatype VIN <- string is
    @xsd:maxLength = 17
  end

  entity Vehicle is
    identity vin -> VIN
  end
end
`

	rentalsModule = `module rentals is
  import vehicle

  entity Booking is
    identity id -> integer
    car -> vehicle:Vehicle
  end
end
`

	brokenModule = `module broken is
  entity Thing is
    identity id -> Missing
  end
end
`
)

type (
	stubProvider struct {
		cfg *config.Config
		err error
	}

	testEnv struct {
		app    *App
		dir    string
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (p *stubProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.cfg != nil {
		cfg := *p.cfg
		return &cfg, nil
	}
	return config.DefaultConfig(), nil
}

// newTestEnv creates an App working in a fresh directory holding modules.
func newTestEnv(t *testing.T, stdin io.Reader, env map[string]string, modules map[string]string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	for name, text := range modules {
		testutil.WriteModule(t, dir, name, text)
	}
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	te := &testEnv{dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	app, err := NewApp(Dependencies{
		Config:     &stubProvider{},
		Stdin:      stdin,
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		Getenv:     testutil.Env(env),
		IsTerminal: func(io.Writer) bool { return false },
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	te.app = app
	return te
}

func (te *testEnv) run(args ...string) error {
	root := NewRootCommand(te.app)
	root.SetArgs(args)
	root.SetOut(te.stdout)
	root.SetErr(te.stderr)
	return root.ExecuteContext(context.Background())
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v (%T) is not an *ExitError", err, err)
	}
	return exitErr.Code
}

func TestValidate_Clean(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, map[string]string{"vehicle": vehicleModule, "rentals": rentalsModule})
	if err := te.run("validate", "rentals"); err != nil {
		t.Fatalf("validate error = %v\nstderr:\n%s", err, te.stderr)
	}
	if !strings.Contains(te.stdout.String(), "module rentals is valid") {
		t.Errorf("stdout = %q, want success line", te.stdout)
	}
	if te.stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", te.stderr)
	}
}

func TestValidate_Diagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown type",
			args:     []string{"validate", "broken"},
			wantCode: ExitFailure,
			wantErr:  ",E0114,",
		},
		{
			name:     "module not found",
			args:     []string{"validate", "nothere"},
			wantCode: ExitFailure,
			wantErr:  ",E0100,",
		},
		{
			name:     "notes hidden at default level",
			args:     []string{"validate", "vehicle"},
			wantCode: ExitOK,
		},
		{
			name:     "notes shown at note level",
			args:     []string{"validate", "--level", "note", "--all", "rentals"},
			wantCode: ExitOK,
			wantErr:  ",I0504,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, nil, nil, map[string]string{
				"vehicle": strings.Replace(vehicleModule, "    @xsd:maxLength = 17\n", "", 1),
				"rentals": rentalsModule,
				"broken":  brokenModule,
			})
			args := append([]string{"--diagnostic-format", "compact"}, tt.args...)
			err := te.run(args...)
			if got := exitCode(t, err); got != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err %v)\nstderr:\n%s", got, tt.wantCode, err, te.stderr)
			}
			if tt.wantErr != "" && !strings.Contains(te.stderr.String(), tt.wantErr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantErr, te.stderr)
			}
			if tt.wantErr == "" && strings.Contains(te.stderr.String(), ",I05") {
				t.Errorf("notes reported at the default level:\n%s", te.stderr)
			}
		})
	}
}

func TestValidate_StandardReport(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, map[string]string{"broken": brokenModule})
	err := te.run("validate", "broken")
	if exitCode(t, err) != ExitFailure {
		t.Fatalf("exit code = %d, want %d", exitCode(t, err), ExitFailure)
	}
	out := te.stderr.String()
	for _, want := range []string{"E0114", "Missing", "module `broken` generated 1 error"} {
		if !strings.Contains(out, want) {
			t.Errorf("stderr missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("stderr contains color escapes without a terminal:\n%s", out)
	}
}

func TestValidate_Input(t *testing.T) {
	t.Parallel()

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, strings.NewReader("module piped is end\n"), nil, nil)
		if err := te.run("validate", "-i", "-"); err != nil {
			t.Fatalf("validate error = %v\nstderr:\n%s", err, te.stderr)
		}
		if !strings.Contains(te.stdout.String(), "module piped is valid") {
			t.Errorf("stdout = %q", te.stdout)
		}
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil, nil, map[string]string{"vehicle": vehicleModule})
		path := testutil.WriteModule(t, filepath.Join(te.dir, "elsewhere"), "fleet",
			"module fleet is\n  import vehicle\nend\n")
		if err := te.run("validate", "--input", path); err != nil {
			t.Fatalf("validate error = %v\nstderr:\n%s", err, te.stderr)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil, nil, nil)
		err := te.run("validate", "-i", filepath.Join(te.dir, "absent.sdm"))
		if exitCode(t, err) != ExitFailure {
			t.Fatalf("exit code = %d, want %d", exitCode(t, err), ExitFailure)
		}
		if !strings.Contains(te.stderr.String(), "failed to load module") {
			t.Errorf("stderr = %q", te.stderr)
		}
	})
}

func TestValidate_SearchPathEnv(t *testing.T) {
	t.Parallel()

	shared := t.TempDir()
	testutil.WriteModule(t, shared, "vehicle", vehicleModule)

	te := newTestEnv(t, nil, map[string]string{"SDML_PATH": shared}, map[string]string{"rentals": rentalsModule})
	if err := te.run("validate", "rentals"); err != nil {
		t.Fatalf("validate with SDML_PATH error = %v\nstderr:\n%s", err, te.stderr)
	}

	te = newTestEnv(t, nil, nil, map[string]string{"rentals": rentalsModule})
	if err := te.run("validate", "--path", shared, "rentals"); err != nil {
		t.Fatalf("validate with --path error = %v\nstderr:\n%s", err, te.stderr)
	}
}

func TestValidate_FailFast(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, map[string]string{"broken": brokenModule})
	err := te.run("validate", "--fail-fast", "broken")
	if exitCode(t, err) != ExitFailure {
		t.Fatalf("exit code = %d, want %d", exitCode(t, err), ExitFailure)
	}
	d, ok := diag.DiagnosticOf(err)
	if !ok {
		t.Fatalf("error %v carries no diagnostic", err)
	}
	if d.Code != diag.TypeDefinitionNotFound {
		t.Errorf("code = %s, want %s", d.Code, diag.TypeDefinitionNotFound)
	}
}

func TestValidate_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"no module", []string{"validate"}},
		{"module and input", []string{"validate", "-i", "-", "rentals"}},
		{"invalid level", []string{"--level", "loud", "validate", "rentals"}},
		{"invalid format", []string{"--diagnostic-format", "json", "validate", "rentals"}},
		{"invalid module name", []string{"validate", "not-a-name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, nil, nil, map[string]string{"rentals": rentalsModule})
			if got := exitCode(t, te.run(tt.args...)); got != ExitUsage {
				t.Errorf("exit code = %d, want %d", got, ExitUsage)
			}
		})
	}
}

func TestSettings_ConfigLoadFailure(t *testing.T) {
	t.Parallel()

	loadErr := issue.NewErrorContext().WithOperation("load configuration").Wrap(errors.New("bad file")).BuildError()

	te := newTestEnv(t, nil, nil, map[string]string{"vehicle": vehicleModule})
	te.app.Config = &stubProvider{err: loadErr}
	if err := te.run("validate", "vehicle"); err != nil {
		t.Fatalf("validate with a broken default config error = %v", err)
	}
	if !strings.Contains(te.stderr.String(), "warning: failed to load configuration") {
		t.Errorf("stderr = %q, want a warning", te.stderr)
	}

	err := te.run("--config", filepath.Join(te.dir, "config.cue"), "validate", "vehicle")
	if !errors.Is(err, loadErr) {
		t.Errorf("validate with a broken --config error = %v, want %v", err, loadErr)
	}
}

func TestSettings_ConfigValues(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Diagnostics.Level = "note"
	cfg.Diagnostics.Format = config.FormatCompact

	te := newTestEnv(t, nil, nil, map[string]string{"vehicle": strings.Replace(vehicleModule, "    @xsd:maxLength = 17\n", "", 1)})
	te.app.Config = &stubProvider{cfg: cfg}
	if err := te.run("validate", "vehicle"); err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(te.stderr.String(), "note,") {
		t.Errorf("stderr = %q, want compact notes from the configuration", te.stderr)
	}
}

func TestSource(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, map[string]string{"vehicle": vehicleModule})
	if err := te.run("source", "vehicle"); err != nil {
		t.Fatalf("source error = %v\nstderr:\n%s", err, te.stderr)
	}
	first := te.stdout.String()
	for _, want := range []string{"module vehicle", "import xsd", "datatype VIN <- string", "identity vin -> VIN"} {
		if !strings.Contains(first, want) {
			t.Errorf("source output missing %q:\n%s", want, first)
		}
	}

	again := newTestEnv(t, strings.NewReader(first), nil, nil)
	if err := again.run("source", "-i", "-"); err != nil {
		t.Fatalf("source of printed output error = %v\nstderr:\n%s", err, again.stderr)
	}
	if again.stdout.String() != first {
		t.Errorf("printing is not stable:\nfirst:\n%s\nsecond:\n%s", first, again.stdout)
	}
}

func TestSource_RawAndIndent(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, map[string]string{"vehicle": vehicleModule})
	if err := te.run("source", "--raw", "vehicle"); err != nil {
		t.Fatalf("source --raw error = %v", err)
	}
	if te.stdout.String() != vehicleModule {
		t.Errorf("raw output =\n%s\nwant\n%s", te.stdout, vehicleModule)
	}

	te.stdout.Reset()
	if err := te.run("source", "--indent", "4", "vehicle"); err != nil {
		t.Fatalf("source --indent error = %v", err)
	}
	if !strings.Contains(te.stdout.String(), "\n    import xsd") {
		t.Errorf("output not indented by 4:\n%s", te.stdout)
	}

	if got := exitCode(t, te.run("source", "--indent", "20", "vehicle")); got != ExitUsage {
		t.Errorf("exit code for --indent 20 = %d, want %d", got, ExitUsage)
	}
}

func TestDeps(t *testing.T) {
	t.Parallel()

	modules := map[string]string{"vehicle": vehicleModule, "rentals": rentalsModule}

	tests := []struct {
		name   string
		args   []string
		want   []string
		exact  string
		reject []string
	}{
		{
			name:   "tree",
			args:   []string{"deps", "rentals"},
			want:   []string{"rentals", "╰── vehicle"},
			reject: []string{"xsd"},
		},
		{
			name: "tree with library",
			args: []string{"deps", "--library", "rentals"},
			want: []string{"╰── vehicle", "╰── xsd"},
		},
		{
			name:  "topo",
			args:  []string{"deps", "--format", "topo", "rentals"},
			exact: "vehicle\nrentals\n",
		},
		{
			name: "dot",
			args: []string{"deps", "-f", "dot", "rentals"},
			want: []string{`digraph "rentals" {`, `"rentals" -> "vehicle";`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, nil, nil, modules)
			if err := te.run(tt.args...); err != nil {
				t.Fatalf("deps error = %v\nstderr:\n%s", err, te.stderr)
			}
			out := te.stdout.String()
			if tt.exact != "" && out != tt.exact {
				t.Errorf("output = %q, want %q", out, tt.exact)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, reject := range tt.reject {
				if strings.Contains(out, reject) {
					t.Errorf("output contains %q:\n%s", reject, out)
				}
			}
		})
	}
}

func TestDeps_Cycle(t *testing.T) {
	t.Parallel()

	modules := map[string]string{
		"a": "module a is\n  import b\nend\n",
		"b": "module b is\n  import a\nend\n",
	}

	te := newTestEnv(t, nil, nil, modules)
	if err := te.run("deps", "a"); err != nil {
		t.Fatalf("deps tree error = %v", err)
	}
	if !strings.Contains(te.stdout.String(), "a (cycle)") {
		t.Errorf("tree does not mark the cycle:\n%s", te.stdout)
	}
	if !strings.Contains(te.stderr.String(), "import cycle: a -> b -> a") {
		t.Errorf("stderr = %q, want the cycle listed", te.stderr)
	}

	te = newTestEnv(t, nil, nil, modules)
	err := te.run("deps", "--format", "topo", "a")
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("deps topo error = %v, want *issue.ActionableError", err)
	}
	if ae.Issue != issue.ImportCycleId {
		t.Errorf("Issue = %d, want ImportCycleId", ae.Issue)
	}
}

func TestDeps_MissingImport(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, map[string]string{"rentals": rentalsModule})
	err := te.run("--diagnostic-format", "compact", "deps", "rentals")
	if exitCode(t, err) != ExitFailure {
		t.Fatalf("exit code = %d, want %d", exitCode(t, err), ExitFailure)
	}
	if !strings.Contains(te.stdout.String(), "vehicle (not found)") {
		t.Errorf("tree does not mark the missing module:\n%s", te.stdout)
	}
	if !strings.Contains(te.stderr.String(), ",E0101,") {
		t.Errorf("stderr = %q, want E0101", te.stderr)
	}
}

func TestExplain(t *testing.T) {
	t.Parallel()

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil, nil, nil)
		if err := te.run("explain", "--markdown", "e0104"); err != nil {
			t.Fatalf("explain error = %v", err)
		}
		out := te.stdout.String()
		if !strings.Contains(out, "# E0104: duplicate definition name") {
			t.Errorf("output missing heading:\n%s", out)
		}
		if !strings.Contains(out, diag.ErrorCodeURLPrefix+"E0104") {
			t.Errorf("output missing link:\n%s", out)
		}
	})

	t.Run("rendered", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil, nil, nil)
		if err := te.run("explain", "W0301"); err != nil {
			t.Fatalf("explain error = %v", err)
		}
		if !strings.Contains(te.stdout.String(), "duplicate module import") {
			t.Errorf("output:\n%s", te.stdout)
		}
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil, nil, nil)
		if err := te.run("explain"); err != nil {
			t.Fatalf("explain error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(te.stdout.String()), "\n")
		if len(lines) != len(diag.Codes()) {
			t.Errorf("listed %d codes, want %d", len(lines), len(diag.Codes()))
		}
		if !strings.HasPrefix(lines[0], "B0002") {
			t.Errorf("first line = %q", lines[0])
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		te := newTestEnv(t, nil, nil, nil)
		if got := exitCode(t, te.run("explain", "X1")); got != ExitUsage {
			t.Errorf("exit code = %d, want %d", got, ExitUsage)
		}
	})
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "cue",
			args: []string{"config", "show"},
			want: []string{"diagnostics: {", `level:  "error"`, "indent: 2"},
		},
		{
			name: "toml",
			args: []string{"config", "show", "--format", "toml"},
			want: []string{"[diagnostics]", "level = 'error'"},
		},
		{
			name: "flags override",
			args: []string{"--level", "warning", "--path", "/models", "--no-stdlib", "config", "show"},
			want: []string{`level:  "warning"`, `"/models"`, "stdlib:    false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t, nil, nil, nil)
			if err := te.run(tt.args...); err != nil {
				t.Fatalf("config show error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(te.stdout.String(), want) {
					t.Errorf("output missing %q:\n%s", want, te.stdout)
				}
			}
		})
	}
}

func TestConfigInitAndPath(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, nil)
	path := filepath.Join(te.dir, "conf", "config.cue")

	if err := te.run("--config", path, "config", "path"); err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(te.stdout.String()) != path {
		t.Errorf("config path = %q, want %q", te.stdout, path)
	}

	te.stdout.Reset()
	if err := te.run("--config", path, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(te.stdout.String(), "Created configuration file") {
		t.Errorf("config init output = %q", te.stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config file =\n%s", data)
	}

	te.stdout.Reset()
	if err := te.run("--config", path, "config", "init"); err != nil {
		t.Fatalf("second config init error = %v", err)
	}
	if !strings.Contains(te.stdout.String(), "already exists") {
		t.Errorf("second config init output = %q", te.stdout)
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "already reported",
			err:  &ExitError{Code: ExitFailure},
		},
		{
			name: "actionable",
			err: issue.NewErrorContext().
				WithOperation("load module").
				WithResource("rentals").
				WithSuggestion("Set SDML_PATH").
				BuildError(),
			want: "failed to load module: rentals\n\n  • Set SDML_PATH\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			handleError(&buf, fang.Styles{}, tt.err, false)
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestGetVersionString(t *testing.T) {
	t.Parallel()

	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, b *lockedBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(b.String(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q in:\n%s", want, b)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestValidate_Watch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteModule(t, dir, "vehicle", vehicleModule)
	stdout, stderr := &lockedBuffer{}, &lockedBuffer{}
	app, err := NewApp(Dependencies{
		Config:     &stubProvider{},
		Stdin:      strings.NewReader(""),
		Stdout:     stdout,
		Stderr:     stderr,
		Getenv:     testutil.Env(map[string]string{"NO_COLOR": "1"}),
		IsTerminal: func(io.Writer) bool { return false },
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		root := NewRootCommand(app)
		root.SetArgs([]string{"--diagnostic-format", "compact", "validate", "--watch", "vehicle"})
		errCh <- root.ExecuteContext(ctx)
	}()

	waitFor(t, stdout, "module vehicle is valid")
	waitFor(t, stderr, "watching 1 directory for changes")

	testutil.WriteFile(t, path, strings.Replace(vehicleModule, "-> VIN", "-> Missing", 1))
	waitFor(t, stderr, ",E0114,")
	if !strings.Contains(stderr.String(), "changed: ") {
		t.Errorf("change not announced:\n%s", stderr)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("validate --watch error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("validate --watch did not stop after cancel")
	}
}

func TestValidate_WatchStdin(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, nil, nil, nil)
	if got := exitCode(t, te.run("validate", "--watch", "-i", "-")); got != ExitUsage {
		t.Errorf("exit code = %d, want %d", got, ExitUsage)
	}
}
