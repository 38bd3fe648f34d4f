// Package search talks to the Google Custom Search JSON API.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var ErrNotConfigured = errors.New("search provider not configured")

// Item is a single search result. Only the fields the app reads are decoded.
type Item struct {
	Title       string  `json:"title"`
	Snippet     string  `json:"snippet"`
	Link        string  `json:"link"`
	DisplayLink string  `json:"displayLink"`
	PageMap     PageMap `json:"pagemap"`
}

type ImageRef struct {
	Src string `json:"src"`
}

type ImageObject struct {
	URL string `json:"url"`
}

// PageMap is the structured metadata the provider scraped from the page.
type PageMap struct {
	CSEImage     []ImageRef       `json:"cse_image,omitempty"`
	ImageObject  []ImageObject    `json:"imageobject,omitempty"`
	CSEThumbnail []ImageRef       `json:"cse_thumbnail,omitempty"`
	Metatags     []map[string]any `json:"metatags,omitempty"`
}

type response struct {
	Items []Item `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client performs one request per Search call, it never retries.
type Client struct {
	endpoint string
	apiKey   string
	cx       string
	http     *http.Client
}

func NewClient(endpoint, apiKey, cx string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		cx:       cx,
		http:     &http.Client{Timeout: timeout},
	}
}

// Configured reports whether both the API key and the engine ID are set.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.cx != ""
}

func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint, %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("key", c.apiKey)
	q.Set("cx", c.cx)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed, %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response, %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Error.Message != "" {
			return nil, fmt.Errorf("search provider returned %d, %s", resp.StatusCode, ae.Error.Message)
		}

		return nil, fmt.Errorf("search provider returned %d", resp.StatusCode)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("failed to decode search response, %w", err)
	}

	return r.Items, nil
}
