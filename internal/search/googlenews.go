package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const googleNewsRSS = "https://news.google.com/rss/search"

// GoogleNewsClient searches regional Google News editions over RSS.
// It needs no API key, which makes it the fallback provider in
// deployments without a Serper subscription.
type GoogleNewsClient struct {
	parser     *gofeed.Parser
	maxResults int
}

// NewGoogleNewsClient creates a Google News RSS search client.
func NewGoogleNewsClient(maxResults int) *GoogleNewsClient {
	if maxResults <= 0 {
		maxResults = 10
	}
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: 20 * time.Second}
	p.UserAgent = "Mozilla/5.0 (compatible; commodity-research/1.0)"
	return &GoogleNewsClient{
		parser:     p,
		maxResults: maxResults,
	}
}

// Name identifies the provider in logs and metrics.
func (c *GoogleNewsClient) Name() string { return "googlenews" }

// Search fetches the region's news edition for the query. The recency
// window is appended as a when: operator, which Google News honours in
// search feeds.
func (c *GoogleNewsClient) Search(ctx context.Context, query string, region Region, window time.Duration) ([]Result, error) {
	q := query
	if d := windowDays(window); d > 0 {
		q = fmt.Sprintf("%s when:%dd", query, d)
	}

	u := fmt.Sprintf("%s?q=%s&hl=%s&gl=%s&ceid=%s",
		googleNewsRSS,
		url.QueryEscape(q),
		url.QueryEscape(region.HL),
		url.QueryEscape(region.GL),
		url.QueryEscape(region.CEID),
	)

	feed, err := c.parser.ParseURLWithContext(u, ctx)
	if err != nil {
		return nil, fmt.Errorf("google news rss: %w", err)
	}

	results := make([]Result, 0, min(len(feed.Items), c.maxResults))
	for _, item := range feed.Items {
		if len(results) >= c.maxResults {
			break
		}
		title, source := splitPublisher(item.Title)
		date := item.Published
		if item.PublishedParsed != nil {
			date = item.PublishedParsed.Format(time.RFC3339)
		}
		results = append(results, Result{
			Title:   title,
			Snippet: strings.TrimSpace(item.Description),
			Link:    item.Link,
			Date:    date,
			Source:  source,
		})
	}
	return results, nil
}

func windowDays(window time.Duration) int {
	if window <= 0 {
		return 0
	}
	d := int(window / (24 * time.Hour))
	if d < 1 {
		d = 1
	}
	return d
}

// splitPublisher separates "Headline - Publisher", the title convention
// in Google News feeds. Titles without the suffix keep an empty source.
func splitPublisher(title string) (string, string) {
	if i := strings.LastIndex(title, " - "); i > 0 {
		return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
	}
	return title, ""
}
