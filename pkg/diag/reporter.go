// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/sdml-io/sdml/pkg/source"
)

type (
	// Reporter renders diagnostics for a user and counts what it reports.
	// Diagnostics below the configured severity filter are dropped and
	// not counted.
	Reporter interface {
		// Emit reports d; files supplies source text for labels and may be nil.
		Emit(d Diagnostic, files *source.Files) error
		// Counters returns the counts since the last call to Done.
		Counters() ReportCounters
		// Done finishes a reporting session for moduleName ("" when not
		// known), returns its counts and resets them.
		Done(moduleName string) (ReportCounters, error)
		Config() ReporterConfig
	}

	// ReporterOption customizes a reporter.
	ReporterOption func(*reporterBase)

	reporterBase struct {
		mu       sync.Mutex
		out      io.Writer
		config   ReporterConfig
		counters ReportCounters
		logger   *log.Logger
	}

	// StandardReporter renders each diagnostic with the source lines its
	// labels point at, followed by notes and a help link.
	StandardReporter struct {
		reporterBase
		styles reporterStyles
	}

	// CompactReporter writes one comma-separated line per diagnostic:
	// severity,file,startline,startcol,endline,endcol,code,message
	CompactReporter struct {
		reporterBase
	}

	// BailoutReporter fails on the first enabled diagnostic.
	BailoutReporter struct {
		reporterBase
	}

	reporterStyles struct {
		severity map[Severity]lipgloss.Style
		primary  lipgloss.Style
		second   lipgloss.Style
		gutter   lipgloss.Style
		message  lipgloss.Style
	}
)

// WithLogger sends a debug record of every emitted diagnostic to logger.
func WithLogger(logger *log.Logger) ReporterOption {
	return func(r *reporterBase) {
		r.logger = logger
	}
}

// Compile-time interface checks.
var (
	_ Reporter = (*StandardReporter)(nil)
	_ Reporter = (*CompactReporter)(nil)
	_ Reporter = (*BailoutReporter)(nil)
)

func (b *reporterBase) init(out io.Writer, cfg ReporterConfig, opts []ReporterOption) {
	b.out = out
	b.config = cfg
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}
}

// accept counts d if it passes the filter.
func (b *reporterBase) accept(d Diagnostic) bool {
	if !b.config.SeverityFilter.Enabled(d.Severity) {
		return false
	}
	b.counters.Record(d.Severity)
	b.logger.Debug("diagnostic", "severity", d.Severity.String(), "code", d.Code.String(), "message", d.Message)
	return true
}

// Counters implements Reporter.
func (b *reporterBase) Counters() ReportCounters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counters
}

// Config implements Reporter.
func (b *reporterBase) Config() ReporterConfig {
	return b.config
}

func (b *reporterBase) reset() ReportCounters {
	c := b.counters
	b.counters = ReportCounters{}
	return c
}

// NewStandardReporter creates a reporter that writes annotated source
// snippets to out.
func NewStandardReporter(out io.Writer, cfg ReporterConfig, opts ...ReporterOption) *StandardReporter {
	r := &StandardReporter{styles: newReporterStyles(out, cfg.UseColor)}
	r.init(out, cfg, opts)
	return r
}

func newReporterStyles(out io.Writer, useColor bool) reporterStyles {
	r := lipgloss.NewRenderer(out)
	if useColor {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return reporterStyles{
		severity: map[Severity]lipgloss.Style{
			SeverityBug:     r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
			SeverityError:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
			SeverityWarning: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
			SeverityNote:    r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
			SeverityHelp:    r.NewStyle().Foreground(lipgloss.Color("#3B82F6")).Bold(true),
		},
		primary: r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		second:  r.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		message: r.NewStyle().Bold(true),
	}
}

// Emit implements Reporter.
func (r *StandardReporter) Emit(d Diagnostic, files *source.Files) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.accept(d) {
		return nil
	}
	_, err := io.WriteString(r.out, r.render(d, files))
	return err
}

func (r *StandardReporter) render(d Diagnostic, files *source.Files) string {
	var sb strings.Builder
	sev := r.styles.severity[d.Severity]
	fmt.Fprintf(&sb, "%s%s\n",
		sev.Render(fmt.Sprintf("%s[%s]", d.Severity, d.Code)),
		r.styles.message.Render(": "+d.Message))

	labels := d.Labels
	if files == nil {
		labels = nil
	}
	width := gutterWidth(labels, files)
	pad := strings.Repeat(" ", width)
	bar := r.styles.gutter.Render("│")

	if primary, ok := d.Primary(); ok && files != nil {
		line, col := files.Location(primary.File, primary.Span.Start())
		fmt.Fprintf(&sb, "%s %s %s:%d:%d\n", pad, r.styles.gutter.Render("┌─"), files.Name(primary.File), line, col)
		fmt.Fprintf(&sb, "%s %s\n", pad, bar)
	}
	for i, l := range labels {
		if i > 0 {
			fmt.Fprintf(&sb, "%s %s\n", pad, r.styles.gutter.Render("·"))
		}
		line, col := files.Location(l.File, l.Span.Start())
		text := files.LineText(l.File, line)
		fmt.Fprintf(&sb, "%s %s %s\n", r.styles.gutter.Render(fmt.Sprintf("%*d", width, line)), bar, text)

		marker, style := "-", r.styles.second
		if l.Primary {
			marker, style = "^", r.styles.primary
		}
		n := underlineWidth(text, col, files.Slice(l.File, l.Span))
		underline := strings.Repeat(marker, n)
		if l.Message != "" {
			underline += " " + l.Message
		}
		fmt.Fprintf(&sb, "%s %s %s%s\n", pad, bar, strings.Repeat(" ", col-1), style.Render(underline))
	}
	if len(labels) > 0 {
		fmt.Fprintf(&sb, "%s %s\n", pad, bar)
	}
	for _, note := range d.Notes {
		fmt.Fprintf(&sb, "%s = %s\n", pad, note)
	}
	fmt.Fprintf(&sb, "%s = help: for more details, see %s\n\n", pad, d.Code.URL())
	return sb.String()
}

func gutterWidth(labels []Label, files *source.Files) int {
	width := 1
	for _, l := range labels {
		line, _ := files.Location(l.File, l.Span.End())
		width = max(width, len(fmt.Sprint(line)))
	}
	return width
}

// underlineWidth is the number of marker characters under a label,
// clamped to the end of its first line and at least one.
func underlineWidth(lineText string, col int, covered string) int {
	if i := strings.IndexByte(covered, '\n'); i >= 0 {
		covered = covered[:i]
	}
	n := utf8.RuneCountInString(covered)
	rest := utf8.RuneCountInString(lineText) - (col - 1)
	if n > rest {
		n = rest
	}
	return max(n, 1)
}

// Done implements Reporter. A summary line is written when anything was
// reported.
func (r *StandardReporter) Done(moduleName string) (ReportCounters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counters := r.reset()
	sev, ok := counters.MostSevere()
	if !ok {
		return counters, nil
	}
	subject := "parser"
	if moduleName != "" {
		subject = fmt.Sprintf("module `%s`", moduleName)
	}
	_, err := fmt.Fprintf(r.out, "%s: %s generated %s\n", r.styles.severity[sev].Render(sev.String()), subject, counters.Summary())
	return counters, err
}

// NewCompactReporter creates a reporter that writes one line per
// diagnostic to out.
func NewCompactReporter(out io.Writer, cfg ReporterConfig, opts ...ReporterOption) *CompactReporter {
	r := &CompactReporter{}
	r.init(out, cfg, opts)
	return r
}

// Emit implements Reporter.
func (r *CompactReporter) Emit(d Diagnostic, files *source.Files) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.accept(d) {
		return nil
	}
	var (
		name                     string
		sLine, sCol, eLine, eCol int
	)
	if l, ok := d.Primary(); ok && files != nil {
		name = files.Name(l.File)
		sLine, sCol = files.Location(l.File, l.Span.Start())
		eLine, eCol = files.Location(l.File, l.Span.End())
	}
	_, err := fmt.Fprintf(r.out, "%s,%s,%d,%d,%d,%d,%s,%s\n", d.Severity, name, sLine, sCol, eLine, eCol, d.Code, d.Message)
	return err
}

// Done implements Reporter.
func (r *CompactReporter) Done(string) (ReportCounters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reset(), nil
}

// NewBailoutReporter creates a reporter that writes nothing and returns
// the first enabled diagnostic as an *Error.
func NewBailoutReporter(cfg ReporterConfig, opts ...ReporterOption) *BailoutReporter {
	r := &BailoutReporter{}
	r.init(io.Discard, cfg, opts)
	return r
}

// Emit implements Reporter.
func (r *BailoutReporter) Emit(d Diagnostic, _ *source.Files) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.accept(d) {
		return nil
	}
	return AsError(d)
}

// Done implements Reporter.
func (r *BailoutReporter) Done(string) (ReportCounters, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reset(), nil
}

// ReporterSink adapts a Reporter to the Sink interface. The first error
// returned by the reporter is kept and later reports are dropped.
type ReporterSink struct {
	Reporter Reporter
	Files    *source.Files

	mu  sync.Mutex
	err error
}

// NewReporterSink creates a sink that emits through r with files as the
// source registry.
func NewReporterSink(r Reporter, files *source.Files) *ReporterSink {
	return &ReporterSink{Reporter: r, Files: files}
}

// Report implements Sink.
func (s *ReporterSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	s.err = s.Reporter.Emit(d, s.Files)
}

// Err returns the first error returned by the reporter.
func (s *ReporterSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
