package commentview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/navlist"
	"github.com/fragmede/hackerterm/internal/render"
	"github.com/fragmede/hackerterm/internal/thread"
	"github.com/fragmede/hackerterm/internal/ui/keys"
	"github.com/fragmede/hackerterm/internal/ui/messages"
	"github.com/fragmede/hackerterm/internal/ui/theme"
)

const (
	scrollStep = 3
	maxIndent  = 30
)

// ThreadResolver builds the comment tree below a set of ids.
type ThreadResolver interface {
	Resolve(ctx context.Context, ids []int, depth int) ([]*api.Comment, error)
}

type commentOffset struct {
	startLine int
	endLine   int
}

// Model is the comment thread view of one story.
type Model struct {
	viewport viewport.Model
	spinner  spinner.Model
	story    *api.Story
	kids     []int
	comments *navlist.List[thread.FlatNode]
	offsets  []commentOffset
	resolver ThreadResolver
	opener   navlist.Opener
	clip     navlist.Clipboard
	keys     keys.KeyMap
	loading  bool
	loadErr  error
	width    int
	height   int
}

// New creates the view for story. kids are the top-level comment ids.
func New(story *api.Story, kids []int, resolver ThreadResolver, opener navlist.Opener, clip navlist.Clipboard, km keys.KeyMap) Model {
	return Model{
		viewport: viewport.New(0, 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Orange))),
		story:    story,
		kids:     kids,
		comments: navlist.New[thread.FlatNode](nil),
		resolver: resolver,
		opener:   opener,
		clip:     clip,
		keys:     km,
		loading:  true,
	}
}

// Init resolves the comment tree.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// Story returns the story being shown.
func (m Model) Story() *api.Story {
	return m.story
}

// Comments returns the navigable flattened thread.
func (m Model) Comments() *navlist.List[thread.FlatNode] {
	return m.comments
}

// Loading reports whether the thread is still being fetched.
func (m Model) Loading() bool {
	return m.loading
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.resizeViewport()
	m.rebuildContent()
}

func (m *Model) resizeViewport() {
	header := m.renderHeader()
	headerLines := strings.Count(header, "\n") + 1
	m.viewport.Height = max(m.height-headerLines, 1)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.CommentsLoadedMsg:
		if m.story == nil || msg.StoryID != m.story.ID {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err != nil {
			m.rebuildContent()
			err := msg.Err
			return m, func() tea.Msg {
				return messages.StatusMsg{Text: "Loading comments: " + err.Error(), IsError: true}
			}
		}
		m.comments = navlist.New(msg.Comments)
		m.resizeViewport()
		m.rebuildContent()
		m.viewport.GotoTop()

		text := fmt.Sprintf("%d comments", msg.Total)
		if msg.Failed > 0 {
			text += fmt.Sprintf(", %d unavailable", msg.Failed)
		}
		return m, func() tea.Msg {
			return messages.StatusMsg{Text: text, IsError: msg.Failed > 0}
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.rebuildContent()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.scrollWithinDown() {
			return m, nil
		}
		m.comments.Next()
		m.moved()
	case key.Matches(msg, m.keys.Up):
		if m.scrollWithinUp() {
			return m, nil
		}
		m.comments.Previous()
		m.moved()
	case key.Matches(msg, m.keys.Top):
		m.comments.Top()
		m.rebuildContent()
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.comments.Bottom()
		m.rebuildContent()
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.NextParent):
		navlist.NextParent(m.comments)
		m.moved()
	case key.Matches(msg, m.keys.PreviousParent):
		navlist.PreviousParent(m.comments)
		m.moved()
	case key.Matches(msg, m.keys.Parent):
		navlist.Parent(m.comments)
		m.moved()
	case key.Matches(msg, m.keys.Unselect):
		m.comments.SelectNone()
		m.rebuildContent()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()
	case key.Matches(msg, m.keys.OpenURL):
		return m, m.openStory()
	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.loadErr = nil
		m.rebuildContent()
		return m, tea.Batch(m.load(), m.spinner.Tick)
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	}
	return m, nil
}

// scrollWithinDown scrolls through a selected comment taller than the
// viewport before moving the selection.
func (m *Model) scrollWithinDown() bool {
	sel, ok := m.comments.Selected()
	if !ok || sel >= len(m.offsets) {
		return false
	}
	off := m.offsets[sel]
	if off.endLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.viewport.YOffset + scrollStep)
		return true
	}
	return false
}

func (m *Model) scrollWithinUp() bool {
	sel, ok := m.comments.Selected()
	if !ok || sel >= len(m.offsets) {
		return false
	}
	off := m.offsets[sel]
	if off.startLine < m.viewport.YOffset {
		m.viewport.SetYOffset(max(m.viewport.YOffset-scrollStep, off.startLine))
		return true
	}
	return false
}

func (m *Model) moved() {
	m.rebuildContent()
	m.scrollToCursor()
}

// View renders the comment view.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View())
}

func (m *Model) rebuildContent() {
	switch {
	case m.loading:
		m.offsets = nil
		m.viewport.SetContent("  " + m.spinner.View() + " Loading comments...")
		return
	case m.loadErr != nil:
		m.offsets = nil
		m.viewport.SetContent(theme.Error.Render("  Error loading comments: " + m.loadErr.Error()))
		return
	case m.comments.Len() == 0:
		m.offsets = nil
		m.viewport.SetContent("  No comments yet.")
		return
	}

	var sb strings.Builder
	nodes := m.comments.Items()
	m.offsets = make([]commentOffset, len(nodes))
	availWidth := max(m.width-4, 20)
	sel, hasSel := m.comments.Selected()

	lineCount := 0
	for i, node := range nodes {
		startLine := lineCount
		indent := min(node.Depth*2, maxIndent)
		indentStr := strings.Repeat(" ", indent)
		selected := hasSel && i == sel

		barColor := theme.DepthColor(node.Depth)
		if selected {
			barColor = theme.Orange
		}
		bar := lipgloss.NewStyle().Foreground(barColor).Render("│")

		lines := m.renderComment(node, max(availWidth-indent-4, 20))
		for _, line := range lines {
			line = indentStr + bar + " " + line
			if selected {
				line = theme.Selected.Render(line)
			}
			sb.WriteString(line + "\n")
			lineCount++
		}
		sb.WriteString("\n")
		lineCount++

		m.offsets[i] = commentOffset{startLine: startLine, endLine: lineCount - 1}
	}

	m.viewport.SetContent(sb.String())
}

func (m Model) renderComment(node thread.FlatNode, width int) []string {
	c := node.Comment
	if c.Unavailable() {
		return []string{theme.Unavailable.Render(unavailableText(c))}
	}

	header := theme.Author.Render(c.By)
	if ago := render.TimeAgo(c.Time); ago != "" {
		header += " " + theme.Hint.Render(ago)
	}
	if m.story != nil && c.By == m.story.By {
		header += " " + theme.OPBadge.Render(" OP ")
	}
	if n := len(c.Children); n > 0 {
		header += " " + theme.Hint.Render(fmt.Sprintf("[%d]", n))
	}

	lines := []string{header}
	return append(lines, strings.Split(render.Wrap(c.Text, width), "\n")...)
}

func unavailableText(c *api.Comment) string {
	return fmt.Sprintf("[comment unavailable: %v]", c.Err)
}

func (m *Model) scrollToCursor() {
	sel, ok := m.comments.Selected()
	if !ok || sel >= len(m.offsets) {
		return
	}
	off := m.offsets[sel]
	if off.startLine < m.viewport.YOffset || off.startLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(off.startLine)
	}
}

func (m Model) renderHeader() string {
	if m.story == nil {
		return theme.Header.Render("Loading...")
	}

	var parts []string
	parts = append(parts, theme.Header.Render(render.Truncate(m.story.Title, max(m.width-2, 20))))
	parts = append(parts, theme.HeaderMeta.Render(fmt.Sprintf(
		"%d points | by %s | %s | %d comments",
		m.story.Score, m.story.By, render.TimeAgo(m.story.Time), m.story.Descendants,
	)))
	if m.story.URL != "" {
		parts = append(parts, theme.HeaderMeta.Render(m.story.URL))
	}
	parts = append(parts, theme.Separator.Render(strings.Repeat("─", m.width)))
	parts = append(parts, theme.Hint.Render(" "+keys.Hint(
		m.keys.Down, m.keys.NextParent, m.keys.PreviousParent, m.keys.Parent,
		m.keys.Copy, m.keys.OpenURL, m.keys.Back,
	)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) load() tea.Cmd {
	resolver := m.resolver
	kids := m.kids
	storyID := m.story.ID
	return func() tea.Msg {
		roots, err := resolver.Resolve(context.Background(), kids, 0)
		if err != nil {
			return messages.CommentsLoadedMsg{StoryID: storyID, Err: err}
		}

		flat := thread.Flatten(roots)
		failed := 0
		for _, n := range flat {
			if n.Comment.Unavailable() {
				failed++
			}
		}
		log.Debug().Int("story", storyID).Int("comments", len(flat)).Int("failed", failed).Msg("thread resolved")
		return messages.CommentsLoadedMsg{StoryID: storyID, Comments: flat, Total: len(flat), Failed: failed}
	}
}

func (m Model) copySelected() tea.Cmd {
	comments := m.comments.Clone()
	clip := m.clip
	return func() tea.Msg {
		if err := navlist.CopySelectedText(comments, clip); err != nil {
			return messages.StatusMsg{Text: "Copy failed: " + err.Error(), IsError: true}
		}
		return messages.StatusMsg{Text: "Comment copied"}
	}
}

func (m Model) openStory() tea.Cmd {
	story := m.story
	opener := m.opener
	return func() tea.Msg {
		if story == nil || story.URL == "" {
			return messages.StatusMsg{Text: "Open failed: no URL", IsError: true}
		}
		if err := opener.Open(story.URL); err != nil {
			return messages.StatusMsg{Text: "Open failed: " + err.Error(), IsError: true}
		}
		return messages.StatusMsg{Text: "Opened " + story.URL}
	}
}
