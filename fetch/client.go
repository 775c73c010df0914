// Package fetch talks to the book search provider and normalizes its
// responses into flat records.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SearchResponse is the provider's document list for one ISBN query. Every
// document field is optional; absent fields decode to their zero values.
type SearchResponse struct {
	Documents []Document `json:"documents"`
}

type Document struct {
	Title       string   `json:"title"`
	Contents    string   `json:"contents"`
	ISBN        string   `json:"isbn"`
	Datetime    string   `json:"datetime"`
	Authors     []string `json:"authors"`
	Translators []string `json:"translators"`
	Publisher   string   `json:"publisher"`
	Thumbnail   string   `json:"thumbnail"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search queries the provider for one ISBN key. Timeouts, connection
// failures and non-success statuses come back as errors; the caller decides
// whether to keep going with the next key.
func (c *Client) Search(ctx context.Context, isbnKey string) (*SearchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("query", isbnKey)
	q.Set("target", "isbn")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
