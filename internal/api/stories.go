package api

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// TopStoryIDs fetches the ranked list of top story IDs. Index 0 is the top.
func (c *Client) TopStoryIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.get(ctx, c.baseURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("fetching top stories: %w", err)
	}
	return ids, nil
}

// TopStories fetches story IDs and batch-fetches the first limit items
// (0 = all). Stories keep their rank order; stories that fail to load are
// dropped. If every story fails, the first failure is returned.
func (c *Client) TopStories(ctx context.Context, limit int) ([]*Story, error) {
	ids, err := c.TopStoryIDs(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	results := make([]*Story, len(ids))
	errs := make([]error, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)

	for i, id := range ids {
		g.Go(func() error {
			story, err := c.GetStory(gctx, id)
			if err != nil {
				// Non-fatal: individual stories can fail.
				log.Warn().Err(err).Int("id", id).Msg("skipping story")
				errs[i] = err
				return nil
			}
			results[i] = story
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stories := make([]*Story, 0, len(results))
	for _, s := range results {
		if s != nil {
			stories = append(stories, s)
		}
	}
	if len(stories) == 0 && len(ids) > 0 {
		for _, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("fetching top stories: %w", err)
			}
		}
	}
	return stories, nil
}
