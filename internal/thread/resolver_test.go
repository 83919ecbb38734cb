package thread

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/render"
)

// fakeFetcher serves comments from a map. Missing ids return ErrNotFound
// unless listed in fail.
type fakeFetcher struct {
	items map[int]api.Comment
	fail  map[int]error
	delay func(id int) time.Duration

	mu       sync.Mutex
	inFlight int
	maxSeen  int
	calls    []int
	onFetch  func(id int)
}

func (f *fakeFetcher) GetComment(ctx context.Context, id int) (*api.Comment, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.calls = append(f.calls, id)
	onFetch := f.onFetch
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if onFetch != nil {
		onFetch(id)
	}
	if f.delay != nil {
		time.Sleep(f.delay(id))
	}
	if err, ok := f.fail[id]; ok {
		return nil, err
	}
	c, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, api.ErrNotFound)
	}
	c.Kids = append([]int(nil), c.Kids...)
	return &c, nil
}

func ids(comments []*api.Comment) []int {
	out := make([]int, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}

func TestResolve_SkipsRemovedSubtrees(t *testing.T) {
	f := &fakeFetcher{items: map[int]api.Comment{
		1: {ID: 1, By: "bob", Kids: []int{2, 3}},
		2: {ID: 2, By: "", Kids: []int{4}},
		3: {ID: 3, By: "sue"},
		4: {ID: 4, By: "ann"},
	}}

	roots, err := NewResolver(f, 4).Resolve(context.Background(), []int{1}, 0)
	require.NoError(t, err)

	require.Len(t, roots, 1)
	assert.Equal(t, 1, roots[0].ID)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, 3, roots[0].Children[0].ID)
	assert.NotContains(t, f.calls, 4, "children of a removed comment are never fetched")
}

func TestResolve_DepthAndOrder(t *testing.T) {
	f := &fakeFetcher{
		items: map[int]api.Comment{
			10: {ID: 10, By: "a", Kids: []int{12, 11}},
			20: {ID: 20, By: "b"},
			11: {ID: 11, By: "c", Kids: []int{13}},
			12: {ID: 12, By: "d"},
			13: {ID: 13, By: "e"},
		},
		// Later ids finish first; order must still follow the input.
		delay: func(id int) time.Duration { return time.Duration(30-id) * time.Millisecond },
	}

	roots, err := NewResolver(f, 8).Resolve(context.Background(), []int{20, 10}, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{20, 10}, ids(roots))
	assert.Equal(t, 2, roots[0].Depth)
	assert.Equal(t, 2, roots[1].Depth)
	assert.Equal(t, []int{12, 11}, ids(roots[1].Children))
	for _, c := range roots[1].Children {
		assert.Equal(t, 3, c.Depth)
	}
	assert.Equal(t, 4, roots[1].Children[1].Children[0].Depth)
}

func TestResolve_FailedFetchBecomesPlaceholder(t *testing.T) {
	boom := errors.New("connection reset")
	f := &fakeFetcher{
		items: map[int]api.Comment{
			1: {ID: 1, By: "a", Kids: []int{2, 3, 4}},
			2: {ID: 2, By: "b"},
			4: {ID: 4, By: "d"},
		},
		fail: map[int]error{3: boom},
	}

	roots, err := NewResolver(f, 2).Resolve(context.Background(), []int{1}, 0)
	require.NoError(t, err)

	kids := roots[0].Children
	require.Equal(t, []int{2, 3, 4}, ids(kids))
	assert.True(t, kids[1].Unavailable())
	assert.ErrorIs(t, kids[1].Err, boom)
	assert.Equal(t, 1, kids[1].Depth)
	assert.False(t, kids[0].Unavailable())
	assert.False(t, kids[2].Unavailable())
}

func TestResolve_NotFoundIsRemoved(t *testing.T) {
	f := &fakeFetcher{items: map[int]api.Comment{
		1: {ID: 1, By: "a"},
	}}

	roots, err := NewResolver(f, 2).Resolve(context.Background(), []int{1, 404}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(roots))
}

func TestResolve_SanitizesText(t *testing.T) {
	f := &fakeFetcher{items: map[int]api.Comment{
		1: {ID: 1, By: "a", Text: "fish &amp; chips<p>more"},
		2: {ID: 2, By: "b", Text: "AT&T"},
	}}

	roots, err := NewResolver(f, 2).Resolve(context.Background(), []int{1, 2}, 0)
	require.NoError(t, err)

	assert.Equal(t, "fish & chips more", roots[0].Text)
	assert.Equal(t, "AT&T", roots[1].Text, "undecodable text is kept raw")
}

func TestResolve_HrefSanitizer(t *testing.T) {
	f := &fakeFetcher{items: map[int]api.Comment{
		1: {ID: 1, By: "a", Text: `"https://x.com" <a href="https://y.com">y</a>`},
	}}

	r := NewResolver(f, 1, WithSanitizer(render.Sanitizer{Anchors: render.AnchorsHref}))
	roots, err := r.Resolve(context.Background(), []int{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, `"https://x.com" https://y.com`, roots[0].Text)
}

func TestResolve_BoundsInFlightFetches(t *testing.T) {
	items := map[int]api.Comment{}
	var wide []int
	for i := 1; i <= 20; i++ {
		wide = append(wide, i)
		items[i] = api.Comment{ID: i, By: "u", Kids: []int{100 + i}}
		items[100+i] = api.Comment{ID: 100 + i, By: "v"}
	}
	f := &fakeFetcher{
		items: items,
		delay: func(int) time.Duration { return 2 * time.Millisecond },
	}

	roots, err := NewResolver(f, 3).Resolve(context.Background(), wide, 0)
	require.NoError(t, err)

	assert.Len(t, roots, 20)
	assert.Equal(t, 40, Count(roots))
	assert.LessOrEqual(t, f.maxSeen, 3)
}

func TestResolve_LevelBarrier(t *testing.T) {
	var levelOneDone atomic.Int32
	var childStartedEarly atomic.Bool

	f := &fakeFetcher{
		items: map[int]api.Comment{
			1:  {ID: 1, By: "a", Kids: []int{11}},
			2:  {ID: 2, By: "b"},
			3:  {ID: 3, By: "c"},
			11: {ID: 11, By: "d"},
		},
		onFetch: func(id int) {
			if id == 11 && levelOneDone.Load() < 3 {
				childStartedEarly.Store(true)
			}
		},
		delay: func(id int) time.Duration {
			if id > 3 {
				return 0
			}
			defer levelOneDone.Add(1)
			if id == 3 {
				// The slowest sibling holds the level open.
				time.Sleep(20 * time.Millisecond)
			}
			return 0
		},
	}

	_, err := NewResolver(f, 8).Resolve(context.Background(), []int{1, 2, 3}, 0)
	require.NoError(t, err)
	assert.False(t, childStartedEarly.Load(), "child level started before its parent level finished")
}

func TestResolve_CancelledContext(t *testing.T) {
	f := &fakeFetcher{items: map[int]api.Comment{1: {ID: 1, By: "a"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(f, 1).Resolve(ctx, []int{1}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_Empty(t *testing.T) {
	roots, err := NewResolver(&fakeFetcher{}, 0).Resolve(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

// genForest draws a random comment forest into items and returns root ids
// plus the number of comments that survive pruning of removed authors.
func genForest(t *rapid.T, items map[int]api.Comment) ([]int, int) {
	next := 1
	var gen func(depth int) ([]int, int)
	gen = func(depth int) ([]int, int) {
		n := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("kids@%d", depth))
		if depth >= 4 {
			n = 0
		}
		var kidIDs []int
		live := 0
		for range n {
			id := next
			next++
			removed := rapid.Float64Range(0, 1).Draw(t, fmt.Sprintf("removed-%d", id)) < 0.2
			kids, sub := gen(depth + 1)
			c := api.Comment{ID: id, By: "user", Kids: kids}
			if removed {
				c.By = ""
			} else {
				live += 1 + sub
			}
			items[id] = c
			kidIDs = append(kidIDs, id)
		}
		return kidIDs, live
	}
	return gen(0)
}

func TestResolve_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := map[int]api.Comment{}
		rootIDs, live := genForest(t, items)
		rootDepth := rapid.IntRange(0, 2).Draw(t, "rootDepth")

		roots, err := NewResolver(&fakeFetcher{items: items}, 4).Resolve(context.Background(), rootIDs, rootDepth)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}

		flat := Flatten(roots)
		if len(flat) != live {
			t.Fatalf("flatten length %d, want %d live comments", len(flat), live)
		}

		var check func(c *api.Comment)
		check = func(c *api.Comment) {
			if c.Removed() {
				t.Fatalf("removed comment %d in tree", c.ID)
			}
			for _, kid := range c.Children {
				if kid.Depth != c.Depth+1 {
					t.Fatalf("child %d depth %d under parent depth %d", kid.ID, kid.Depth, c.Depth)
				}
				check(kid)
			}
		}
		for _, r := range roots {
			if r.Depth != rootDepth {
				t.Fatalf("root %d depth %d, want %d", r.ID, r.Depth, rootDepth)
			}
			check(r)
		}
	})
}
