package commentview

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/ui/keys"
	"github.com/fragmede/hackerterm/internal/ui/messages"
)

type fakeResolver struct {
	roots []*api.Comment
	err   error
	ids   []int
}

func (f *fakeResolver) Resolve(_ context.Context, ids []int, _ int) ([]*api.Comment, error) {
	f.ids = ids
	return f.roots, f.err
}

type fakeClipboard struct{ text string }

func (f *fakeClipboard) Copy(text string) error {
	f.text = text
	return nil
}

type fakeOpener struct{ opened []string }

func (f *fakeOpener) Open(u string) error {
	f.opened = append(f.opened, u)
	return nil
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// testThread returns:
//
//	A(1)
//	  B(2)
//	    C(3)
//	D(4)
//	  [unavailable](5)
func testThread() []*api.Comment {
	c := &api.Comment{ID: 3, By: "carol", Text: "third", Parent: 2, Depth: 2}
	b := &api.Comment{ID: 2, By: "bob", Text: "second", Parent: 1, Depth: 1, Children: []*api.Comment{c}}
	a := &api.Comment{ID: 1, By: "alice", Text: "first", Parent: 100, Depth: 0, Children: []*api.Comment{b}}
	e := &api.Comment{ID: 5, Parent: 4, Depth: 1, Err: errors.New("boom")}
	d := &api.Comment{ID: 4, By: "pg", Text: "fourth", Parent: 100, Depth: 0, Children: []*api.Comment{e}}
	return []*api.Comment{a, d}
}

func newModel(resolver ThreadResolver, clip *fakeClipboard, opener *fakeOpener) Model {
	story := &api.Story{ID: 100, Title: "Story", By: "pg", URL: "https://example.com", Kids: []int{1, 4}}
	m := New(story, story.Kids, resolver, opener, clip, keys.Default())
	m.SetSize(100, 60)
	return m
}

func loadedModel(t *testing.T, clip *fakeClipboard, opener *fakeOpener) Model {
	t.Helper()
	resolver := &fakeResolver{roots: testThread()}
	m := newModel(resolver, clip, opener)
	m, _ = m.Update(m.load()())
	require.False(t, m.Loading())
	return m
}

func selected(t *testing.T, m Model) int {
	t.Helper()
	idx, ok := m.Comments().Selected()
	require.True(t, ok)
	return idx
}

func TestLoad(t *testing.T) {
	resolver := &fakeResolver{roots: testThread()}
	m := newModel(resolver, &fakeClipboard{}, &fakeOpener{})

	msg, ok := m.load()().(messages.CommentsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, []int{1, 4}, resolver.ids)
	assert.Equal(t, 100, msg.StoryID)
	assert.Equal(t, 5, msg.Total)
	assert.Equal(t, 1, msg.Failed)

	var ids []int
	for _, n := range msg.Comments {
		ids = append(ids, n.Comment.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
}

func TestUpdate_CommentsLoaded(t *testing.T) {
	m := loadedModel(t, &fakeClipboard{}, &fakeOpener{})

	assert.Equal(t, 5, m.Comments().Len())
	assert.Equal(t, 0, selected(t, m))

	view := m.View()
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "[comment unavailable: boom]")
	assert.Contains(t, view, " OP ")
}

func TestUpdate_IgnoresOtherStory(t *testing.T) {
	m := newModel(&fakeResolver{}, &fakeClipboard{}, &fakeOpener{})

	m, cmd := m.Update(messages.CommentsLoadedMsg{StoryID: 999})
	assert.Nil(t, cmd)
	assert.True(t, m.Loading())
}

func TestUpdate_LoadError(t *testing.T) {
	m := newModel(&fakeResolver{}, &fakeClipboard{}, &fakeOpener{})

	m, cmd := m.Update(messages.CommentsLoadedMsg{StoryID: 100, Err: context.Canceled})
	require.NotNil(t, cmd)
	assert.True(t, cmd().(messages.StatusMsg).IsError)
	assert.Contains(t, m.View(), "Error loading comments")
}

func TestUpdate_NoComments(t *testing.T) {
	m := newModel(&fakeResolver{}, &fakeClipboard{}, &fakeOpener{})

	m, _ = m.Update(m.load()())
	assert.Contains(t, m.View(), "No comments yet.")

	m, _ = m.Update(keyMsg("j"))
	_, ok := m.Comments().Selected()
	assert.False(t, ok)
}

func TestUpdate_ParentJumps(t *testing.T) {
	m := loadedModel(t, &fakeClipboard{}, &fakeOpener{})

	m, _ = m.Update(keyMsg("]"))
	assert.Equal(t, 3, selected(t, m))

	m, _ = m.Update(keyMsg("]"))
	assert.Equal(t, 3, selected(t, m), "no later root")

	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 4, selected(t, m))

	m, _ = m.Update(keyMsg("["))
	assert.Equal(t, 3, selected(t, m))

	m, _ = m.Update(keyMsg("["))
	assert.Equal(t, 0, selected(t, m))
}

func TestUpdate_ParentOfNested(t *testing.T) {
	m := loadedModel(t, &fakeClipboard{}, &fakeOpener{})

	m, _ = m.Update(keyMsg("G"))
	assert.Equal(t, 4, selected(t, m))

	m.Comments().Select(2)
	m, _ = m.Update(keyMsg("p"))
	assert.Equal(t, 1, selected(t, m))
}

func TestUpdate_Copy(t *testing.T) {
	clip := &fakeClipboard{}
	m := loadedModel(t, clip, &fakeOpener{})

	m, _ = m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("y"))
	status := cmd().(messages.StatusMsg)
	assert.False(t, status.IsError)
	assert.Equal(t, "second", clip.text)

	m.Comments().Select(4)
	_, cmd = m.Update(keyMsg("y"))
	status = cmd().(messages.StatusMsg)
	assert.True(t, status.IsError, "placeholders cannot be copied")
}

func TestUpdate_OpenURL(t *testing.T) {
	opener := &fakeOpener{}
	m := loadedModel(t, &fakeClipboard{}, opener)

	_, cmd := m.Update(keyMsg("o"))
	cmd()
	assert.Equal(t, []string{"https://example.com"}, opener.opened)
}

func TestUpdate_Unselect(t *testing.T) {
	m := loadedModel(t, &fakeClipboard{}, &fakeOpener{})

	m, _ = m.Update(keyMsg("l"))
	_, ok := m.Comments().Selected()
	assert.False(t, ok)

	m, _ = m.Update(keyMsg("]"))
	assert.Equal(t, 3, selected(t, m), "jumps scan from the effective index")
}

func TestUpdate_Refresh(t *testing.T) {
	m := loadedModel(t, &fakeClipboard{}, &fakeOpener{})

	m, cmd := m.Update(keyMsg("r"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading comments")
}
