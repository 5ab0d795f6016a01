package styles

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
)

// Theme names accepted by the "theme" config key.
const (
	ThemeDefault = "default"
	ThemeNone    = "none"
)

// Theme defines the color palette for UI components
type Theme struct {
	Name    string
	Primary color.Color // titles and borders
	Accent  color.Color // selected items and the current entry
	Success color.Color
	Warning color.Color // foreign hooks, skipped commits
	Error   color.Color
	Muted   color.Color // indexes and secondary columns
}

var (
	// DefaultTheme uses the 256 color palette.
	DefaultTheme = Theme{
		Name:    ThemeDefault,
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Success: lipgloss.Color("82"),  // green
		Warning: lipgloss.Color("214"), // orange
		Error:   lipgloss.Color("196"), // red
		Muted:   lipgloss.Color("240"), // dark gray
	}

	// NoneTheme renders text without colors. Bold and underline are kept.
	NoneTheme = Theme{Name: ThemeNone}
)

var currentTheme = DefaultTheme

// Current returns the active theme.
func Current() Theme {
	return currentTheme
}

// Init selects the theme by name. Output written to w that is not a
// terminal falls back to NoneTheme.
// Call this after loading config and before rendering anything.
func Init(name string, w io.Writer) error {
	theme, err := Lookup(name)
	if err != nil {
		return err
	}
	if w != nil && colorprofile.Detect(w, os.Environ()) == colorprofile.NoTTY {
		theme = NoneTheme
	}
	currentTheme = theme
	applyTheme(theme)
	return nil
}

// Lookup returns the preset named name. An empty name is the default.
func Lookup(name string) (Theme, error) {
	switch name {
	case "", ThemeDefault:
		return DefaultTheme, nil
	case ThemeNone:
		return NoneTheme, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (available: %s, %s)", name, ThemeDefault, ThemeNone)
}

// foreground returns a style with c as foreground, or a plain style when c
// is nil.
func foreground(c color.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c != nil {
		s = s.Foreground(c)
	}
	return s
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted

	PrimaryStyle = foreground(t.Primary)
	AccentStyle = foreground(t.Accent).Bold(true)
	SuccessStyle = foreground(t.Success)
	WarningStyle = foreground(t.Warning)
	ErrorStyle = foreground(t.Error)
	MutedStyle = foreground(t.Muted)

	HeaderStyle = foreground(t.Primary).Bold(true)
	CurrentStyle = foreground(t.Accent).Bold(true)
}
