// Package quote fetches the motivational quote shown on the Home screen.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"planify/internal/service"
)

// APITimeout bounds a single fetch.
const APITimeout = 10 * time.Second

// maxBody caps how much of the response is read.
const maxBody = 64 << 10

// Client is an unauthenticated client for a ZenQuotes-style API: a GET
// returning a JSON array whose first element has "q" and "a".
type Client struct {
	url  string
	http *http.Client
}

// New creates a Client for url. A nil httpClient uses http.DefaultClient.
func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, http: httpClient}
}

type entry struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Fetch implements service.QuoteSource. Every failure wraps
// service.ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context) (service.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return service.Quote{}, fmt.Errorf("%w: %v", service.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return service.Quote{}, fmt.Errorf("%w: %v", service.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return service.Quote{}, fmt.Errorf("%w: status %d", service.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return service.Quote{}, fmt.Errorf("%w: %v", service.ErrFetchFailed, err)
	}

	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return service.Quote{}, fmt.Errorf("%w: %v", service.ErrFetchFailed, err)
	}
	if len(entries) == 0 {
		return service.Quote{}, fmt.Errorf("%w: empty response", service.ErrFetchFailed)
	}

	q := service.Quote{
		Text:   strings.TrimSpace(entries[0].Q),
		Author: strings.TrimSpace(entries[0].A),
	}
	if q.Text == "" {
		return service.Quote{}, fmt.Errorf("%w: blank quote", service.ErrFetchFailed)
	}
	return q, nil
}

// Cache keeps the first successful quote for the rest of the session.
// Failures are not cached.
type Cache struct {
	src service.QuoteSource

	mu     sync.Mutex
	quote  service.Quote
	cached bool
}

// NewCache wraps src.
func NewCache(src service.QuoteSource) *Cache {
	return &Cache{src: src}
}

// Fetch implements service.QuoteSource.
func (c *Cache) Fetch(ctx context.Context) (service.Quote, error) {
	c.mu.Lock()
	if c.cached {
		q := c.quote
		c.mu.Unlock()
		return q, nil
	}
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh fetches a new quote, replacing the cached one on success.
func (c *Cache) Refresh(ctx context.Context) (service.Quote, error) {
	q, err := c.src.Fetch(ctx)
	if err != nil {
		return service.Quote{}, err
	}
	c.mu.Lock()
	c.quote, c.cached = q, true
	c.mu.Unlock()
	return q, nil
}
