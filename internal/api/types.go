package api

// Story is a top-level HN item as shown in the story list.
type Story struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Time        int64  `json:"time"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
}

// Comment is a node in a discussion tree.
//
// Depth and Children are filled in by the thread resolver, not the API.
// Err is set on placeholder nodes whose fetch failed; such nodes carry only
// ID and Depth.
type Comment struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	By     string `json:"by"`
	Text   string `json:"text"`
	Time   int64  `json:"time"`
	Parent int    `json:"parent"`
	Kids   []int  `json:"kids"`

	Depth    int        `json:"-"`
	Children []*Comment `json:"-"`
	Err      error      `json:"-"`
}

// Removed reports whether the comment was deleted or removed upstream.
// The API returns such items without an author.
func (c *Comment) Removed() bool {
	return c.By == ""
}

// Unavailable reports whether the comment is a placeholder for a failed fetch.
func (c *Comment) Unavailable() bool {
	return c.Err != nil
}
