// Package theme holds the lipgloss styles shared by the views.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Orange = lipgloss.Color("#FF6600")
	Gray   = lipgloss.Color("#828282")

	// DepthColors cycles through these for nested comment bars.
	DepthColors = []lipgloss.Color{
		"#FF6600", // orange
		"#828282", // gray
		"#00BFFF", // deep sky blue
		"#32CD32", // lime green
		"#FFD700", // gold
		"#FF69B4", // hot pink
		"#9370DB", // medium purple
		"#20B2AA", // light sea green
	}

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	SelectedTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Orange)

	ReadTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))

	Meta = lipgloss.NewStyle().
		Foreground(Gray)

	SelectedMeta = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	Hint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))

	Index = lipgloss.NewStyle().
		Foreground(Orange).
		Width(4).
		Align(lipgloss.Right)

	Author = lipgloss.NewStyle().
		Foreground(Orange).
		Bold(true)

	OPBadge = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(Orange).
		Bold(true)

	Selected = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333"))

	Unavailable = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AA5555")).
			Italic(true)

	Separator = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1)

	HeaderMeta = lipgloss.NewStyle().
			Foreground(Gray).
			Padding(0, 1)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5555"))
)

// DepthColor returns the bar color for a nesting depth.
func DepthColor(depth int) lipgloss.Color {
	if depth < 0 {
		depth = 0
	}
	return DepthColors[depth%len(DepthColors)]
}
