package news

import (
	"regexp"
	"strings"
)

var (
	dedupeWhitespace  = regexp.MustCompile(`\s+`)
	dedupePunctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
)

// normalizeText lowercases, strips punctuation, and collapses
// whitespace so titles from different regional editions compare evenly.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = dedupePunctuation.ReplaceAllString(s, " ")
	s = dedupeWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// tokenOverlap computes the word-level intersection-over-union of two
// normalized strings.
func tokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(ta))
	for _, tok := range ta {
		setA[tok] = struct{}{}
	}

	union := make(map[string]struct{}, len(ta)+len(tb))
	for tok := range setA {
		union[tok] = struct{}{}
	}

	inter := make(map[string]struct{})
	for _, tok := range tb {
		if _, ok := setA[tok]; ok {
			inter[tok] = struct{}{}
		}
		union[tok] = struct{}{}
	}
	return float64(len(inter)) / float64(len(union))
}

// sameStory reports whether two normalized titles describe one story:
// identical, one contained in the other, or token overlap at or above
// the threshold.
func sameStory(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return tokenOverlap(a, b) >= threshold
}

// Dedupe collapses near-duplicate articles collected across regions to
// one representative per story, keeping the more recently published
// item. When neither timestamp parses the earlier-seen item survives.
// Quadratic over the candidate set, which is bounded by
// regions x per-region cap. Idempotent.
func Dedupe(items []RawNewsItem, threshold float64) []RawNewsItem {
	type candidate struct {
		item  RawNewsItem
		norm  string
		ts    int64
		hasTS bool
	}

	kept := make([]candidate, 0, len(items))

	for _, item := range items {
		norm := normalizeText(item.Title)
		ts, ok := publishedTime(item.PublishedAt)

		c := candidate{item: item, norm: norm, hasTS: ok}
		if ok {
			c.ts = ts.Unix()
		}

		// an item can bridge several kept stories, e.g. a combined
		// headline containing two earlier titles as substrings; every
		// match must merge into one survivor or a duplicate pair
		// remains in the output
		var matched []int
		for i := range kept {
			if sameStory(kept[i].norm, norm, threshold) {
				matched = append(matched, i)
			}
		}
		if len(matched) == 0 {
			kept = append(kept, c)
			continue
		}

		// earliest-seen survivor wins unless a later one has a
		// parseable, strictly newer timestamp; same rule decides
		// between the merged survivor and the newcomer
		win := kept[matched[0]]
		for _, i := range matched[1:] {
			if kept[i].hasTS && (!win.hasTS || kept[i].ts > win.ts) {
				win = kept[i]
			}
		}
		if c.hasTS && (!win.hasTS || c.ts > win.ts) {
			win = c
		}
		kept[matched[0]] = win

		if len(matched) > 1 {
			drop := make(map[int]bool, len(matched)-1)
			for _, i := range matched[1:] {
				drop[i] = true
			}
			filtered := kept[:0]
			for i := range kept {
				if !drop[i] {
					filtered = append(filtered, kept[i])
				}
			}
			kept = filtered
		}
	}

	out := make([]RawNewsItem, len(kept))
	for i, c := range kept {
		out[i] = c.item
	}
	return out
}
