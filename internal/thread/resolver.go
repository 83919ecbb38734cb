// Package thread resolves HN discussion trees and flattens them for display.
package thread

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/render"
)

const defaultMaxConcurrent = 10

// CommentFetcher resolves a single comment by id.
type CommentFetcher interface {
	GetComment(ctx context.Context, id int) (*api.Comment, error)
}

// Resolver fetches comment trees level by level. All fetches at one level
// run concurrently and finish before any child level starts. In-flight
// fetches are capped across the whole tree.
type Resolver struct {
	fetcher   CommentFetcher
	sem       *semaphore.Weighted
	sanitizer render.Sanitizer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSanitizer sets the sanitizer applied to comment text.
func WithSanitizer(s render.Sanitizer) Option {
	return func(r *Resolver) { r.sanitizer = s }
}

// NewResolver creates a resolver allowing at most maxConcurrent in-flight
// fetches. Values below 1 use the default.
func NewResolver(fetcher CommentFetcher, maxConcurrent int, opts ...Option) *Resolver {
	if maxConcurrent < 1 {
		maxConcurrent = defaultMaxConcurrent
	}
	r := &Resolver{
		fetcher: fetcher,
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches ids and all their descendants. The returned comments keep
// the order of ids. Removed comments (no author, or not found) are dropped
// together with their subtrees. Comments that fail to load are kept as
// placeholders with Err set. The error is non-nil only when ctx is done.
func (r *Resolver) Resolve(ctx context.Context, ids []int, depth int) ([]*api.Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	fetched := r.fetchLevel(ctx, ids)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comments := make([]*api.Comment, 0, len(fetched))
	for _, c := range fetched {
		if c.Err != nil {
			if errors.Is(c.Err, api.ErrNotFound) {
				continue
			}
			log.Warn().Err(c.Err).Int("id", c.ID).Msg("comment unavailable")
			c.Depth = depth
			comments = append(comments, c)
			continue
		}
		if c.Removed() {
			continue
		}

		c.Depth = depth
		text, err := r.sanitizer.SanitizeOrRaw(c.Text)
		if err != nil {
			log.Warn().Err(err).Int("id", c.ID).Msg("showing raw comment text")
		}
		c.Text = text
		comments = append(comments, c)
	}

	var g errgroup.Group
	for _, c := range comments {
		if c.Unavailable() || len(c.Kids) == 0 {
			continue
		}
		g.Go(func() error {
			children, err := r.Resolve(ctx, c.Kids, depth+1)
			if err != nil {
				return err
			}
			c.Children = children
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return comments, nil
}

// fetchLevel fetches every id concurrently and waits for all of them.
// Failures come back as placeholder comments carrying the error.
func (r *Resolver) fetchLevel(ctx context.Context, ids []int) []*api.Comment {
	results := make([]*api.Comment, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			if err := r.sem.Acquire(ctx, 1); err != nil {
				results[i] = &api.Comment{ID: id, Err: err}
				return nil
			}
			defer r.sem.Release(1)

			c, err := r.fetcher.GetComment(ctx, id)
			if err != nil {
				results[i] = &api.Comment{ID: id, Err: err}
				return nil
			}
			results[i] = c
			return nil
		})
	}
	_ = g.Wait()
	return results
}
