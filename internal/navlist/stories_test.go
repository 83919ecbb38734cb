package navlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/hackerterm/internal/api"
)

type recordingOpener struct {
	opened []string
	err    error
}

func (r *recordingOpener) Open(url string) error {
	r.opened = append(r.opened, url)
	return r.err
}

func TestSelectedKids(t *testing.T) {
	l := New([]*api.Story{
		{ID: 1, Kids: []int{10, 11}},
		{ID: 2},
	})

	assert.Equal(t, []int{10, 11}, SelectedKids(l))

	l.Next()
	assert.Empty(t, SelectedKids(l))

	l.SelectNone()
	assert.Nil(t, SelectedKids(l))
}

func TestOpenSelected(t *testing.T) {
	l := New([]*api.Story{
		{ID: 1, URL: "https://example.com"},
		{ID: 2},
	})
	opener := &recordingOpener{}

	require.NoError(t, OpenSelected(l, opener))
	assert.Equal(t, []string{"https://example.com"}, opener.opened)

	l.Next()
	assert.Error(t, OpenSelected(l, opener), "story without URL")

	l.SelectNone()
	assert.Error(t, OpenSelected(l, opener))
	assert.Len(t, opener.opened, 1)
}

func TestOpenSelected_PropagatesOpenerError(t *testing.T) {
	l := New([]*api.Story{{ID: 1, URL: "https://example.com"}})
	boom := errors.New("no browser")

	err := OpenSelected(l, &recordingOpener{err: boom})
	assert.ErrorIs(t, err, boom)
}
