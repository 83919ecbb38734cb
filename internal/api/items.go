package api

import "context"

// GetStory fetches a single item by ID, decoded as a story.
func (c *Client) GetStory(ctx context.Context, id int) (*Story, error) {
	var story Story
	if err := c.get(ctx, c.itemURL(id), &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// GetComment fetches a single item by ID, decoded as a comment.
func (c *Client) GetComment(ctx context.Context, id int) (*Comment, error) {
	var comment Comment
	if err := c.get(ctx, c.itemURL(id), &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
