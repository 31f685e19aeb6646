package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: namespaces, keys, scopes.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "enabled" lifecycle status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "reloaded" lifecycle status.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "disabled" lifecycle status.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// colorBlue is used for table headers.
	colorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (namespaces, keys, file paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (enabling, reloading).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Lifecycle status words.
const (
	StatusEnabled   = "enabled"
	StatusDisabled  = "disabled"
	StatusReloaded  = "reloaded"
	StatusUnchanged = "unchanged"
	StatusValid     = "valid"
	statusFailed    = "failed"
)

// statusStyle returns the style for a lifecycle status word. Unknown statuses
// return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusEnabled, StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusReloaded:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusDisabled:
		return lipgloss.NewStyle().Foreground(colorRed)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minScopeColumnWidth is the minimum width of the namespace column before
// the status suffix.
const minScopeColumnWidth = 32

// FormatScopeLine renders a scope namespace with a right-aligned,
// color-coded status suffix.
//
// Format: s:<namespace>  <status>
func FormatScopeLine(namespace, status string) string {
	if namespace == "" {
		namespace = "<root>"
	}

	padding := minScopeColumnWidth - len(namespace)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("s:") +
		StyleNoun.Render(namespace) +
		strings.Repeat(" ", padding) +
		statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// Styles groups the styles used by renderers that can run without color.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Noun    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the colored style set.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Noun:    StyleNoun,
		Success: lipgloss.NewStyle().Foreground(colorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(colorRed),
	}
}

// NoColorStyles returns a style set that renders plain text.
func NoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Bold:    plain,
		Muted:   plain,
		Noun:    plain,
		Success: plain,
		Warning: plain,
		Error:   plain,
	}
}
