package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"
	requestTimeout = 10 * time.Second
	maxConcurrent  = 10
	userAgent      = "hackerterm/1.0"
)

// Client is the HN API client.
type Client struct {
	baseURL       string
	http          *http.Client
	maxConcurrent int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithMaxConcurrent caps concurrent item fetches in batch calls.
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxConcurrent = n
		}
	}
}

// NewClient creates a new HN API client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: requestTimeout},
		maxConcurrent: maxConcurrent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches a URL and decodes the JSON response into dst.
// A literal null body is reported as ErrNotFound.
func (c *Client) get(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &TransportError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ParseError{URL: url, Err: err}
	}
	return nil
}

func (c *Client) itemURL(id int) string {
	return fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
}
