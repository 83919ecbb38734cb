package messages

import (
	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/thread"
)

// View transition messages.
type (
	OpenStoryMsg struct {
		Story *api.Story
		Kids  []int
	}
	GoBackMsg struct{}
)

// Data messages.
type (
	StoriesLoadedMsg struct {
		Stories []*api.Story
		Read    map[int]bool
		Err     error
	}

	CommentsLoadedMsg struct {
		StoryID  int
		Comments []thread.FlatNode
		Total    int
		Failed   int
		Err      error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
