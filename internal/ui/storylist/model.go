package storylist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/history"
	"github.com/fragmede/hackerterm/internal/navlist"
	"github.com/fragmede/hackerterm/internal/render"
	"github.com/fragmede/hackerterm/internal/ui/keys"
	"github.com/fragmede/hackerterm/internal/ui/messages"
	"github.com/fragmede/hackerterm/internal/ui/theme"
)

// Lines per story: title, description, spacing.
const itemHeight = 3

// StoryLoader fetches the ranked story list.
type StoryLoader interface {
	TopStories(ctx context.Context, limit int) ([]*api.Story, error)
}

// Model is the story list view.
type Model struct {
	stories *navlist.List[*api.Story]
	read    map[int]bool
	loader  StoryLoader
	marks   history.Marker
	opener  navlist.Opener
	keys    keys.KeyMap
	spinner spinner.Model
	limit   int
	loading bool
	offset  int
	width   int
	height  int
}

// New creates a new story list model.
func New(loader StoryLoader, marks history.Marker, opener navlist.Opener, km keys.KeyMap, limit int) Model {
	return Model{
		stories: navlist.New[*api.Story](nil),
		read:    map[int]bool{},
		loader:  loader,
		marks:   marks,
		opener:  opener,
		keys:    km,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Orange))),
		limit:   limit,
		loading: true,
	}
}

// Init loads the initial story list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStories(), m.spinner.Tick)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampOffset()
}

// Stories returns the navigable story list.
func (m Model) Stories() *navlist.List[*api.Story] {
	return m.stories
}

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// MarkRead dims a story in the list.
func (m *Model) MarkRead(id int) {
	m.read[id] = true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.StoriesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			err := msg.Err
			return m, func() tea.Msg {
				return messages.StatusMsg{Text: "Refresh failed: " + err.Error(), IsError: true}
			}
		}
		m.stories = navlist.New(msg.Stories)
		m.read = msg.Read
		if m.read == nil {
			m.read = map[int]bool{}
		}
		m.offset = 0
		return m, func() tea.Msg {
			return messages.StatusMsg{Text: fmt.Sprintf("%d stories", len(msg.Stories))}
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			m.stories.Next()
		case key.Matches(msg, m.keys.Up):
			m.stories.Previous()
		case key.Matches(msg, m.keys.Top):
			m.stories.Top()
		case key.Matches(msg, m.keys.Bottom):
			m.stories.Bottom()
		case key.Matches(msg, m.keys.Unselect):
			m.stories.SelectNone()
		case key.Matches(msg, m.keys.Open):
			story, ok := m.stories.SelectedItem()
			if !ok {
				return m, nil
			}
			kids := navlist.SelectedKids(m.stories)
			return m, func() tea.Msg {
				return messages.OpenStoryMsg{Story: story, Kids: kids}
			}
		case key.Matches(msg, m.keys.OpenURL):
			return m, m.openSelected()
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.loadStories(), m.spinner.Tick)
		}
		m.clampOffset()
	}

	return m, nil
}

// View renders the story list.
func (m Model) View() string {
	var sb strings.Builder

	title := theme.Header.Render("Top Stories")
	if m.loading {
		title += " " + m.spinner.View()
	}
	sb.WriteString(title + "\n")
	sb.WriteString(theme.Hint.Render(" "+keys.Hint(m.keys.Down, m.keys.Up, m.keys.Open, m.keys.OpenURL, m.keys.Refresh, m.keys.Quit)) + "\n")

	if m.stories.Len() == 0 {
		if m.loading {
			sb.WriteString(theme.Meta.Render("  Loading stories..."))
		} else {
			sb.WriteString(theme.Meta.Render("  No stories."))
		}
		return sb.String()
	}

	sel, hasSel := m.stories.Selected()
	items := m.stories.Items()
	end := min(m.offset+m.pageSize(), len(items))
	availWidth := max(m.width-6, 20)

	for i := m.offset; i < end; i++ {
		s := items[i]
		idx := theme.Index.Render(fmt.Sprintf("%d.", i+1))
		title := render.Truncate(storyTitle(s), availWidth)
		desc := render.Truncate(storyDescription(s), availWidth)

		switch {
		case hasSel && i == sel:
			title = theme.SelectedTitle.Render(title)
			desc = theme.SelectedMeta.Render(desc)
		case m.read[s.ID]:
			title = theme.ReadTitle.Render(title)
			desc = theme.Hint.Render(desc)
		default:
			title = theme.Title.Render(title)
			desc = theme.Meta.Render(desc)
		}
		fmt.Fprintf(&sb, "%s %s\n     %s\n\n", idx, title, desc)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) pageSize() int {
	// Two header lines.
	return max((m.height-2)/itemHeight, 1)
}

func (m *Model) clampOffset() {
	idx := m.stories.Index()
	page := m.pageSize()
	if idx < m.offset {
		m.offset = idx
	}
	if idx >= m.offset+page {
		m.offset = idx - page + 1
	}
	m.offset = max(m.offset, 0)
}

func (m Model) openSelected() tea.Cmd {
	stories := m.stories.Clone()
	opener := m.opener
	return func() tea.Msg {
		if err := navlist.OpenSelected(stories, opener); err != nil {
			return messages.StatusMsg{Text: "Open failed: " + err.Error(), IsError: true}
		}
		story, _ := stories.SelectedItem()
		return messages.StatusMsg{Text: "Opened " + storyHost(story)}
	}
}

func (m Model) loadStories() tea.Cmd {
	loader := m.loader
	marks := m.marks
	limit := m.limit
	return func() tea.Msg {
		stories, err := loader.TopStories(context.Background(), limit)
		if err != nil {
			return messages.StoriesLoadedMsg{Err: err}
		}

		ids := make([]int, len(stories))
		for i, s := range stories {
			ids[i] = s.ID
		}
		read, err := marks.ReadSet(ids)
		if err != nil {
			log.Warn().Err(err).Msg("reading history")
			read = map[int]bool{}
		}
		return messages.StoriesLoadedMsg{Stories: stories, Read: read}
	}
}
