package news

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Stage tracks where a triage run is in its lifecycle.
type Stage string

const (
	// StageCollecting means regional searches are in flight
	StageCollecting Stage = "collecting"

	// StageDeduplicating means collected items are being merged
	StageDeduplicating Stage = "deduplicating"

	// StageScoring means the model ranking call is in flight
	StageScoring Stage = "scoring"

	// StageFallbackScoring means the deterministic ranker took over
	StageFallbackScoring Stage = "fallback_scoring"

	// StageDone means the run produced a result
	StageDone Stage = "done"

	// StageTimedOut means the overall budget was exhausted
	StageTimedOut Stage = "timed_out"
)

// RawNewsItem is a collected, not-yet-scored article. Items are created
// by the collector and never mutated after enrichment; scoring produces
// a separate RankedNewsItem.
type RawNewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"` // source-supplied, not guaranteed parseable
	Source      string `json:"source"`
	Region      string `json:"region,omitempty"`
}

// RankedNewsItem is a RawNewsItem enriched with a risk score. The split
// type makes the scorer's postcondition explicit: a ranked item always
// carries a score in [1,10] and a reason.
type RankedNewsItem struct {
	RawNewsItem
	RiskScore    float64 `json:"risk_score"`
	ImpactReason string  `json:"impact_reason"`
}

// TriageResult is the outcome of one triage run.
type TriageResult struct {
	ID             string           `json:"id"`
	Query          string           `json:"query"`
	Items          []RankedNewsItem `json:"items"`
	FallbackUsed   bool             `json:"fallback_used"`
	Stage          Stage            `json:"stage"`
	Collected      int              `json:"collected"`
	Deduplicated   int              `json:"deduplicated"`
	RegionFailures int              `json:"region_failures"`
	CreatedAt      time.Time        `json:"created_at"`
	Duration       float64          `json:"duration_seconds"`
}

// relativeAge matches the "2 hours ago" style timestamps Serper returns
// instead of absolute dates.
var relativeAge = regexp.MustCompile(`^(\d+)\s+(minute|hour|day|week|month)s?\s+ago$`)

var relativeUnits = map[string]time.Duration{
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
	"month":  30 * 24 * time.Hour,
}

// publishedTime parses the loosely formatted timestamps search backends
// return, including relative forms anchored to the wall clock. The bool
// reports whether the value was parseable; callers treat unparseable
// timestamps as oldest.
func publishedTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		time.RFC1123Z,
		time.RFC1123,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if m := relativeAge.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw))); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return time.Now().Add(-time.Duration(n) * relativeUnits[m[2]]), true
		}
	}
	return time.Time{}, false
}
