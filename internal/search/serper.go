package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultSerperEndpoint = "https://google.serper.dev/news"

// SerperClient queries the Serper.dev Google News JSON API.
type SerperClient struct {
	endpoint   string
	apiKey     string
	maxResults int
	httpClient *http.Client
}

// NewSerperClient creates a Serper news-search client. An empty endpoint
// selects the public API URL.
func NewSerperClient(endpoint, apiKey string, maxResults int) *SerperClient {
	if endpoint == "" {
		endpoint = defaultSerperEndpoint
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &SerperClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name identifies the provider in logs and metrics.
func (c *SerperClient) Name() string { return "serper" }

type serperRequest struct {
	Q    string `json:"q"`
	GL   string `json:"gl"`
	HL   string `json:"hl"`
	Num  int    `json:"num"`
	TBS  string `json:"tbs,omitempty"`
	Page int    `json:"page,omitempty"`
}

type serperResponse struct {
	News []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Date    string `json:"date"`
		Source  string `json:"source"`
	} `json:"news"`
}

// Search issues one region-scoped news search, constrained to the given
// recency window.
func (c *SerperClient) Search(ctx context.Context, query string, region Region, window time.Duration) ([]Result, error) {
	body, err := json.Marshal(serperRequest{
		Q:   query,
		GL:  strings.ToLower(region.GL),
		HL:  shortLang(region.HL),
		Num: c.maxResults,
		TBS: recencyFilter(window),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper api error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out serperResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	results := make([]Result, 0, len(out.News))
	for _, n := range out.News {
		results = append(results, Result{
			Title:   n.Title,
			Snippet: n.Snippet,
			Link:    n.Link,
			Date:    n.Date,
			Source:  n.Source,
		})
	}
	return results, nil
}

// recencyFilter maps a recency window to Google's tbs query parameter.
func recencyFilter(window time.Duration) string {
	switch {
	case window <= 0:
		return ""
	case window <= 24*time.Hour:
		return "qdr:d"
	case window <= 7*24*time.Hour:
		return "qdr:w"
	default:
		return "qdr:m"
	}
}

// shortLang trims a BCP 47 tag like "en-US" down to "en".
func shortLang(hl string) string {
	if i := strings.Index(hl, "-"); i > 0 {
		return hl[:i]
	}
	return hl
}
