package render

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	got := Wrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 10, "line %q too wide", line)
	}
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", strings.Join(strings.Fields(got), " "))
}

func TestWrap_KeepsCodeLines(t *testing.T) {
	in := "    if x { return very_long_identifier_that_does_not_fit }"
	assert.Equal(t, in, Wrap(in, 10))
}

func TestWrap_ZeroWidth(t *testing.T) {
	assert.Equal(t, "a b", Wrap("a b", 0))
}

func TestWrap_WideRunes(t *testing.T) {
	got := Wrap("日本語 日本語", 6)
	assert.Equal(t, "日本語\n日本語", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hell…", Truncate("hello world", 5))
	assert.Equal(t, "hi", Truncate("hi", 5))
	assert.Empty(t, Truncate("hi", 0))
}

func TestTimeAgo(t *testing.T) {
	assert.Empty(t, TimeAgo(0))
	assert.Contains(t, TimeAgo(time.Now().Add(-3*time.Hour).Unix()), "hours ago")
}
