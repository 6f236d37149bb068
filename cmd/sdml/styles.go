// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette shared by all CLI output. It matches the diagnostic
// reporter's colors.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for module names, codes and keys.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Styles are lipgloss styles bound to one output stream.
type Styles struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles creates styles rendering to w. Without color every style
// renders plain text.
func NewStyles(w io.Writer, useColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if useColor {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Title:     r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle:  r.NewStyle().Foreground(ColorMuted),
		Success:   r.NewStyle().Foreground(ColorSuccess),
		Error:     r.NewStyle().Bold(true).Foreground(ColorError),
		Warning:   r.NewStyle().Foreground(ColorWarning),
		Highlight: r.NewStyle().Foreground(ColorHighlight),
		Muted:     r.NewStyle().Foreground(ColorMuted),
	}
}
