package news

import (
	"math"
	"strings"
	"time"
)

// Heuristics holds the deterministic adjustments layered on top of the
// model's base score. The same multipliers drive the fallback ranker, so
// degraded runs stay comparable with scored ones.
type Heuristics struct {
	// GeoFocus lists region/country names whose mention boosts an item.
	GeoFocus []string
	// PriorityCountry gets a larger boost than the rest of GeoFocus.
	PriorityCountry string
	// Now is overridable for tests; zero means time.Now.
	Now func() time.Time
}

const (
	keywordBoostCap = 1.30
	geoBoostCap     = 1.30
	recencyFloor    = 0.80
)

// sourceTiers maps normalized publisher names to credibility weights.
// Top-tier wire and financial press beat established general press,
// which beats regional or specialized outlets. Unknown sources carry a
// small penalty.
var sourceTiers = []struct {
	weight  float64
	outlets []string
}{
	{1.20, []string{
		"reuters", "bloomberg", "financial times", "wall street journal",
		"wsj", "cnbc", "marketwatch", "dow jones",
	}},
	{1.10, []string{
		"bbc", "cnn", "the guardian", "new york times", "associated press",
		"ap news", "nikkei", "the economist", "al jazeera",
	}},
	{1.00, []string{
		"bangkok post", "the nation", "straits times", "south china morning post",
		"economic times", "business standard", "kitco", "oilprice",
	}},
}

// keywordTiers groups urgency, policy, and market vocabulary. Each tier
// contributes its boost once regardless of how many of its words match;
// the combined multiplier is capped.
var keywordTiers = []struct {
	boost float64
	words []string
}{
	{0.15, []string{
		"breaking", "urgent", "crisis", "crash", "collapse", "war",
		"invasion", "attack", "emergency", "default",
	}},
	{0.10, []string{
		"sanctions", "tariff", "embargo", "ban", "central bank", "rate hike",
		"rate cut", "opec", "stimulus", "intervention", "trade war",
	}},
	{0.05, []string{
		"surge", "plunge", "shortage", "disruption", "supply chain",
		"volatility", "inflation", "recession", "strike", "drought",
	}},
}

func (h Heuristics) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// recencyMultiplier rewards very fresh articles and decays toward a
// floor across a week. Unparseable timestamps are treated as neutral.
func (h Heuristics) recencyMultiplier(publishedAt string) float64 {
	ts, ok := publishedTime(publishedAt)
	if !ok {
		return 1.0
	}
	age := h.now().Sub(ts)
	switch {
	case age < 0:
		return 1.0
	case age <= 3*time.Hour:
		return 1.30
	case age <= 12*time.Hour:
		return 1.20
	case age <= 24*time.Hour:
		return 1.10
	case age <= 3*24*time.Hour:
		return 1.00
	case age <= 7*24*time.Hour:
		return 0.90
	default:
		return recencyFloor
	}
}

// sourceMultiplier weights an item by publisher reputation.
func (h Heuristics) sourceMultiplier(source string) float64 {
	s := normalizeText(source)
	if s == "" {
		return 0.95
	}
	for _, tier := range sourceTiers {
		for _, outlet := range tier.outlets {
			if strings.Contains(s, outlet) {
				return tier.weight
			}
		}
	}
	return 0.95
}

// keywordMultiplier boosts items whose text hits urgency, policy, or
// market vocabulary, one capped boost per tier.
func (h Heuristics) keywordMultiplier(title, description string) float64 {
	text := normalizeText(title + " " + description)
	mult := 1.0
	for _, tier := range keywordTiers {
		for _, word := range tier.words {
			if strings.Contains(text, word) {
				mult += tier.boost
				break
			}
		}
	}
	return math.Min(mult, keywordBoostCap)
}

// geoMultiplier boosts items mentioning the configured regional focus,
// with a larger boost for the priority country.
func (h Heuristics) geoMultiplier(title, description string) float64 {
	text := normalizeText(title + " " + description)
	mult := 1.0
	if h.PriorityCountry != "" && strings.Contains(text, normalizeText(h.PriorityCountry)) {
		mult += 0.25
	}
	for _, region := range h.GeoFocus {
		if region == "" {
			continue
		}
		if strings.Contains(text, normalizeText(region)) {
			mult += 0.10
			break
		}
	}
	return math.Min(mult, geoBoostCap)
}

// Apply combines the four multipliers with a base score and clamps the
// result to [1,10], rounded to one decimal.
func (h Heuristics) Apply(base float64, item RawNewsItem) float64 {
	score := base *
		h.recencyMultiplier(item.PublishedAt) *
		h.sourceMultiplier(item.Source) *
		h.keywordMultiplier(item.Title, item.Description) *
		h.geoMultiplier(item.Title, item.Description)
	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return math.Round(score*10) / 10
}
