// Package styles provides the shared lipgloss styles used by the git-nav
// tools for tables, pickers and notices.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors of the active theme.
var (
	Primary color.Color
	Accent  color.Color
	Success color.Color
	Warning color.Color
	Error   color.Color
	Muted   color.Color
)

// Styles derived from the active theme.
var (
	// HeaderStyle renders table headers.
	HeaderStyle lipgloss.Style

	// CurrentStyle marks the entry a command acts on, such as the
	// checked out branch or the next "-" target.
	CurrentStyle lipgloss.Style

	PrimaryStyle lipgloss.Style
	AccentStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
)

func init() {
	applyTheme(DefaultTheme)
}
