package storylist

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/render"
)

const noURL = "No URL Provided"

func storyTitle(s *api.Story) string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("[%s #%d]", s.Type, s.ID)
}

func storyDescription(s *api.Story) string {
	parts := make([]string, 0, 4)

	if s.Score > 0 {
		parts = append(parts, fmt.Sprintf("%d points", s.Score))
	}
	if s.By != "" {
		parts = append(parts, "by "+s.By)
	}
	if ago := render.TimeAgo(s.Time); ago != "" {
		parts = append(parts, ago)
	}
	parts = append(parts, fmt.Sprintf("%d comments", s.Descendants))

	return strings.Join(parts, " | ") + "  (" + storyHost(s) + ")"
}

func storyHost(s *api.Story) string {
	if s.URL == "" {
		return noURL
	}
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return s.URL
	}
	return strings.TrimPrefix(u.Host, "www.")
}
