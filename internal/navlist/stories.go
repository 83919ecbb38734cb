package navlist

import (
	"fmt"

	"github.com/fragmede/hackerterm/internal/api"
)

// Opener opens a URL outside the terminal.
type Opener interface {
	Open(url string) error
}

// SelectedKids returns the comment ids of the selected story.
func SelectedKids(l *List[*api.Story]) []int {
	story, ok := l.SelectedItem()
	if !ok || story == nil {
		return nil
	}
	return story.Kids
}

// OpenSelected hands the selected story's URL to the opener.
func OpenSelected(l *List[*api.Story], opener Opener) error {
	story, ok := l.SelectedItem()
	if !ok || story == nil {
		return fmt.Errorf("no story selected")
	}
	if story.URL == "" {
		return fmt.Errorf("story %d has no URL", story.ID)
	}
	return opener.Open(story.URL)
}
