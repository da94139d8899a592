// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Shared hex palette for every surface the CLI prints: step lines, the
// doctor report, deps output and watch-mode narration. Picked for dark
// terminal backgrounds.
const (
	// ColorPrimary is purple, for report titles and section headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, for secondary lines and skipped-check markers.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, for passing checks and completed steps.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red, for fatal setup failures and failing checks.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, for non-fatal step warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, for command names and file paths.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Styles built from the palette. Commands compose these rather than
// calling lipgloss directly so the output stays uniform.
var (
	// TitleStyle heads the doctor report and the config listing.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle carries secondary detail: config sources, fix
	// hints, summary counts.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle marks passing checks and successful writes.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle marks fatal errors and the failure glyph.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle marks warnings the launch continues past.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle marks command names and config keys inline in prose.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseHighlightStyle marks the change markers in watch mode.
	VerboseHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight)
)
