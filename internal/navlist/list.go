// Package navlist provides a cursor over an ordered sequence with
// hierarchy-aware jumps for story and comment lists.
package navlist

// List is a cursor over items. The selection is either a valid index into
// items or nothing.
type List[T any] struct {
	items    []T
	selected int
	active   bool
}

// New wraps items and selects the first one, if any.
func New[T any](items []T) *List[T] {
	l := &List[T]{items: items}
	if len(items) > 0 {
		l.active = true
	}
	return l
}

// Items returns the underlying sequence.
func (l *List[T]) Items() []T { return l.items }

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// Selected returns the selected index and whether anything is selected.
func (l *List[T]) Selected() (int, bool) {
	return l.selected, l.active
}

// Index returns the effective index: the selection, or 0 when nothing is
// selected.
func (l *List[T]) Index() int {
	if !l.active {
		return 0
	}
	return l.selected
}

// SelectedItem returns the selected item.
func (l *List[T]) SelectedItem() (T, bool) {
	var zero T
	if !l.active || l.selected >= len(l.items) {
		return zero, false
	}
	return l.items[l.selected], true
}

// Select selects index i. Out of range indexes are ignored.
func (l *List[T]) Select(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.selected = i
	l.active = true
}

// SelectNone clears the selection.
func (l *List[T]) SelectNone() {
	l.selected = 0
	l.active = false
}

// Next moves the selection down by one, wrapping from last to first.
// With nothing selected it selects the first item.
func (l *List[T]) Next() {
	if len(l.items) == 0 {
		return
	}
	if !l.active {
		l.Select(0)
		return
	}
	l.Select((l.selected + 1) % len(l.items))
}

// Previous moves the selection up by one, wrapping from first to last.
// With nothing selected it selects the first item.
func (l *List[T]) Previous() {
	if len(l.items) == 0 {
		return
	}
	if !l.active {
		l.Select(0)
		return
	}
	l.Select((l.selected - 1 + len(l.items)) % len(l.items))
}

// Top selects the first item.
func (l *List[T]) Top() {
	l.Select(0)
}

// Bottom selects the last item.
func (l *List[T]) Bottom() {
	l.Select(len(l.items) - 1)
}

// Clone returns a list sharing items with an independent selection.
func (l *List[T]) Clone() *List[T] {
	c := *l
	return &c
}
