package navlist

import (
	"fmt"

	"github.com/fragmede/hackerterm/internal/thread"
)

// Clipboard receives copied text.
type Clipboard interface {
	Copy(text string) error
}

// NextParent selects the nearest depth-0 entry after the current one.
// The selection is left alone when there is none.
func NextParent(l *List[thread.FlatNode]) {
	items := l.Items()
	for i := l.Index() + 1; i < len(items); i++ {
		if items[i].Depth == 0 {
			l.Select(i)
			return
		}
	}
}

// PreviousParent selects the nearest depth-0 entry before the current one.
// The selection is left alone when there is none.
func PreviousParent(l *List[thread.FlatNode]) {
	items := l.Items()
	for i := l.Index() - 1; i >= 0; i-- {
		if items[i].Depth == 0 {
			l.Select(i)
			return
		}
	}
}

// Parent selects the parent of the current comment, if it is in the list.
func Parent(l *List[thread.FlatNode]) {
	if _, ok := l.Selected(); !ok {
		return
	}
	if idx := thread.FindParentIndex(l.Items(), l.Index()); idx >= 0 {
		l.Select(idx)
	}
}

// CopySelectedText hands the selected comment's text to the clipboard.
func CopySelectedText(l *List[thread.FlatNode], clip Clipboard) error {
	node, ok := l.SelectedItem()
	if !ok || node.Comment == nil {
		return fmt.Errorf("no comment selected")
	}
	if node.Comment.Unavailable() {
		return fmt.Errorf("comment %d is unavailable", node.Comment.ID)
	}
	return clip.Copy(node.Comment.Text)
}
