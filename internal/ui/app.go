package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/fragmede/hackerterm/internal/history"
	"github.com/fragmede/hackerterm/internal/navlist"
	"github.com/fragmede/hackerterm/internal/ui/commentview"
	"github.com/fragmede/hackerterm/internal/ui/keys"
	"github.com/fragmede/hackerterm/internal/ui/messages"
	"github.com/fragmede/hackerterm/internal/ui/statusbar"
	"github.com/fragmede/hackerterm/internal/ui/storylist"
)

// ViewType identifies the active view.
type ViewType int

const (
	ViewStoryList ViewType = iota
	ViewComments
)

func (v ViewType) label() string {
	if v == ViewComments {
		return "Comments"
	}
	return "Top"
}

// Deps are the collaborators the views need.
type Deps struct {
	Stories    storylist.StoryLoader
	Resolver   commentview.ThreadResolver
	History    history.Marker
	Browser    navlist.Opener
	Clipboard  navlist.Clipboard
	Keys       keys.KeyMap
	StoryLimit int
}

// App is the root Bubble Tea model.
type App struct {
	activeView ViewType

	storyList   storylist.Model
	commentView commentview.Model
	statusBar   statusbar.Model

	deps   Deps
	loaded bool
	err    error

	width  int
	height int
}

// NewApp creates the root application model.
func NewApp(deps Deps) *App {
	if deps.History == nil {
		deps.History = history.Disabled{}
	}
	return &App{
		activeView: ViewStoryList,
		storyList:  storylist.New(deps.Stories, deps.History, deps.Browser, deps.Keys, deps.StoryLimit),
		statusBar:  statusbar.New(),
		deps:       deps,
	}
}

// Err returns the error that ended the program, if any.
func (a *App) Err() error {
	return a.err
}

// ActiveView returns the view currently shown.
func (a *App) ActiveView() ViewType {
	return a.activeView
}

// Init starts the application.
func (a *App) Init() tea.Cmd {
	return a.storyList.Init()
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // status bar
		a.storyList.SetSize(msg.Width, contentHeight)
		a.statusBar.SetSize(msg.Width)
		if a.activeView == ViewComments {
			a.commentView.SetSize(msg.Width, contentHeight)
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.deps.Keys.Quit):
			if a.activeView == ViewStoryList || msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			return a, a.goBack()
		case key.Matches(msg, a.deps.Keys.Back):
			if a.activeView != ViewStoryList {
				return a, a.goBack()
			}
			return a, nil
		}

	case messages.StoriesLoadedMsg:
		if !a.loaded {
			if msg.Err != nil {
				a.err = fmt.Errorf("loading top stories: %w", msg.Err)
				log.Error().Err(msg.Err).Msg("initial story load failed")
				return a, tea.Quit
			}
			a.loaded = true
		} else if msg.Err != nil {
			log.Warn().Err(msg.Err).Msg("refreshing stories")
		}
		var cmd tea.Cmd
		a.storyList, cmd = a.storyList.Update(msg)
		return a, cmd

	case messages.CommentsLoadedMsg:
		if a.activeView != ViewComments {
			return a, nil
		}
		var cmd tea.Cmd
		a.commentView, cmd = a.commentView.Update(msg)
		return a, cmd

	case messages.OpenStoryMsg:
		return a, a.openStory(msg)

	case messages.GoBackMsg:
		return a, a.goBack()

	case messages.StatusMsg:
		a.statusBar, _ = a.statusBar.Update(msg)
		return a, nil

	case spinner.TickMsg:
		// Ticks carry the spinner id, so each view ignores the other's.
		var cmd tea.Cmd
		a.storyList, cmd = a.storyList.Update(msg)
		cmds = append(cmds, cmd)
		if a.activeView == ViewComments {
			a.commentView, cmd = a.commentView.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	switch a.activeView {
	case ViewStoryList:
		a.storyList, cmd = a.storyList.Update(msg)
	case ViewComments:
		a.commentView, cmd = a.commentView.Update(msg)
	}
	return a, cmd
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewStoryList:
		content = a.storyList.View()
	case ViewComments:
		content = a.commentView.View()
	}

	content = lipgloss.NewStyle().Height(max(a.height-1, 0)).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) openStory(msg messages.OpenStoryMsg) tea.Cmd {
	if msg.Story == nil {
		return nil
	}
	if err := a.deps.History.MarkRead(msg.Story.ID); err != nil {
		log.Warn().Err(err).Int("story", msg.Story.ID).Msg("recording read mark")
	}
	a.storyList.MarkRead(msg.Story.ID)

	a.commentView = commentview.New(msg.Story, msg.Kids, a.deps.Resolver, a.deps.Browser, a.deps.Clipboard, a.deps.Keys)
	a.commentView.SetSize(a.width, a.height-1)
	a.activeView = ViewComments
	a.statusBar.SetView(a.activeView.label())
	a.statusBar.SetStatus("", false)
	return a.commentView.Init()
}

func (a *App) goBack() tea.Cmd {
	a.activeView = ViewStoryList
	a.statusBar.SetView(a.activeView.label())
	return nil
}
