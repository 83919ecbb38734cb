package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/fragmede/hackerterm/internal/config"
)

func TestNew_UsesConfiguredKeys(t *testing.T) {
	bindings := config.DefaultKeys()
	bindings[config.ActionDown] = []string{"n"}

	km := New(bindings)

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, km.Down))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, km.Down))
}

func TestNew_FallsBackToDefaults(t *testing.T) {
	km := New(map[string][]string{})

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")}, km.NextParent))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Open))
}

func TestHint(t *testing.T) {
	km := Default()
	assert.Equal(t, "j/down:down  ]:next thread", Hint(km.Down, km.NextParent))
}
