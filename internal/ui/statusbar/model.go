package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/hackerterm/internal/ui/messages"
	"github.com/fragmede/hackerterm/internal/ui/theme"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	nameStyle = lipgloss.NewStyle().
			Background(theme.Orange).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	viewStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#555555")).
			Foreground(lipgloss.Color("#CCCCCC")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	view       string
	statusText string
	isError    bool
}

// New creates a new status bar.
func New() Model {
	return Model{view: "Top"}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetView sets the label of the active view.
func (m *Model) SetView(label string) {
	m.view = label
}

// SetStatus sets a status message, replacing any previous one.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// Status returns the current status message.
func (m Model) Status() (string, bool) {
	return m.statusText, m.isError
}

// Update records status messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(messages.StatusMsg); ok {
		m.SetStatus(msg.Text, msg.IsError)
	}
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	left := nameStyle.Render("HN") + viewStyle.Render(m.view)

	var right string
	if m.statusText != "" {
		if m.isError {
			right = errorTextStyle.Render(m.statusText)
		} else {
			right = statusTextStyle.Render(m.statusText)
		}
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}
