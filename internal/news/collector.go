package news

import (
	"context"
	"sync"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/tkhongsap/commodity-currency-research/internal/search"
)

// Collector fans one search query out across regional contexts and
// unions the results. A failing region contributes nothing; only total
// failure is visible to callers, and then only as an empty slice.
type Collector struct {
	provider     search.Provider
	regions      []search.Region
	perRegionCap int
	window       time.Duration
	logger       log.Logger
	onSearch     func(region string, duration float64, err error)
}

// NewCollector creates a collector over the given provider and regions.
func NewCollector(provider search.Provider, regions []search.Region, perRegionCap int, window time.Duration, logger log.Logger) *Collector {
	if logger == nil {
		logger = log.Nop()
	}
	if perRegionCap <= 0 {
		perRegionCap = 10
	}
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	return &Collector{
		provider:     provider,
		regions:      regions,
		perRegionCap: perRegionCap,
		window:       window,
		logger:       logger,
	}
}

// SetSearchHook registers a per-region observation callback, wired to
// metrics by the engine.
func (c *Collector) SetSearchHook(fn func(region string, duration float64, err error)) {
	c.onSearch = fn
}

// Collect issues one search per region concurrently and waits for all
// of them to settle. Returns the region-tagged union and the number of
// regions that failed.
func (c *Collector) Collect(ctx context.Context, query string) ([]RawNewsItem, int) {
	type regionResult struct {
		region string
		items  []RawNewsItem
		err    error
	}

	results := make([]regionResult, len(c.regions))

	var wg sync.WaitGroup
	for i, region := range c.regions {
		wg.Add(1)
		go func(i int, region search.Region) {
			defer wg.Done()
			start := time.Now()
			hits, err := c.provider.Search(ctx, query, region, c.window)
			if c.onSearch != nil {
				c.onSearch(region.Code, time.Since(start).Seconds(), err)
			}
			if err != nil {
				results[i] = regionResult{region: region.Code, err: err}
				return
			}
			if len(hits) > c.perRegionCap {
				hits = hits[:c.perRegionCap]
			}
			items := make([]RawNewsItem, 0, len(hits))
			for _, hit := range hits {
				if hit.Title == "" || hit.Link == "" {
					continue
				}
				items = append(items, RawNewsItem{
					Title:       hit.Title,
					Description: hit.Snippet,
					URL:         hit.Link,
					PublishedAt: hit.Date,
					Source:      hit.Source,
					Region:      region.Code,
				})
			}
			results[i] = regionResult{region: region.Code, items: items}
		}(i, region)
	}
	wg.Wait()

	var union []RawNewsItem
	var failed int
	for _, rr := range results {
		if rr.err != nil {
			failed++
			c.logger.Warn(ctx, "region search failed",
				"region", rr.region,
				"provider", c.provider.Name(),
				"error", rr.err.Error(),
			)
			continue
		}
		union = append(union, rr.items...)
	}

	return union, failed
}
