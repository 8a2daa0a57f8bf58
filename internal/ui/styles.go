package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for the selected block
	ColorDanger    = "196" // Red - for unavailable images
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title    lipgloss.Style // Bold accent color - for the list header
	Hint     lipgloss.Style // Help/hint text
	Selected lipgloss.Style // Cursor marker and selected block name
	Normal   lipgloss.Style // Block text
	Image    lipgloss.Style // Image source line
	ImageOK  lipgloss.Style // Loaded image details
	ImageBad lipgloss.Style // Image that could not be shown at all
	Empty    lipgloss.Style // Empty state text (muted, italic)
	HelpBox  lipgloss.Style // Leader key help box
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Image: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	ImageOK: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	ImageBad: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	HelpBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1),
}
