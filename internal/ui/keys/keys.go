// Package keys maps configured key strings onto bubbles key bindings.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/fragmede/hackerterm/internal/config"
)

type KeyMap struct {
	Quit           key.Binding
	Back           key.Binding
	Unselect       key.Binding
	Down           key.Binding
	Up             key.Binding
	Top            key.Binding
	Bottom         key.Binding
	NextParent     key.Binding
	PreviousParent key.Binding
	Parent         key.Binding
	Open           key.Binding
	OpenURL        key.Binding
	Copy           key.Binding
	Refresh        key.Binding
	PageDown       key.Binding
	PageUp         key.Binding
}

// New builds the key map from action → keys bindings. Actions missing from
// bindings fall back to the defaults.
func New(bindings map[string][]string) KeyMap {
	b := func(action, help string) key.Binding {
		ks := bindings[action]
		if len(ks) == 0 {
			ks = config.DefaultKeys()[action]
		}
		return key.NewBinding(key.WithKeys(ks...), key.WithHelp(strings.Join(ks, "/"), help))
	}

	return KeyMap{
		Quit:           b(config.ActionQuit, "quit"),
		Back:           b(config.ActionBack, "back"),
		Unselect:       b(config.ActionUnselect, "unselect"),
		Down:           b(config.ActionDown, "down"),
		Up:             b(config.ActionUp, "up"),
		Top:            b(config.ActionTop, "top"),
		Bottom:         b(config.ActionBottom, "bottom"),
		NextParent:     b(config.ActionNextParent, "next thread"),
		PreviousParent: b(config.ActionPreviousParent, "prev thread"),
		Parent:         b(config.ActionParent, "parent"),
		Open:           b(config.ActionOpen, "comments"),
		OpenURL:        b(config.ActionOpenURL, "open url"),
		Copy:           b(config.ActionCopy, "copy"),
		Refresh:        b(config.ActionRefresh, "refresh"),
		PageDown:       key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "page down")),
		PageUp:         key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "page up")),
	}
}

// Default returns the built-in key map.
func Default() KeyMap {
	return New(config.DefaultKeys())
}

// Hint renders "key:help" pairs for a header line.
func Hint(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	return strings.Join(parts, "  ")
}
