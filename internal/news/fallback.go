package news

import (
	"fmt"
	"math"
	"sort"
)

const (
	// fallbackBase is the neutral score every item starts from when the
	// model is unavailable.
	fallbackBase = 5.0

	// tieEpsilon is the score distance inside which recency decides the
	// fallback ordering. Scores are rounded to one decimal, so adjacent
	// tenths count as near-ties.
	tieEpsilon = 0.1
)

// FallbackRanker produces a deterministic ordering from the heuristic
// multipliers alone. It has no external dependency and never fails;
// empty input yields an empty result.
type FallbackRanker struct {
	heur Heuristics
	topN int
}

// NewFallbackRanker creates the model-free ranker.
func NewFallbackRanker(heur Heuristics, topN int) *FallbackRanker {
	if topN <= 0 {
		topN = 5
	}
	return &FallbackRanker{heur: heur, topN: topN}
}

// Rank assigns every item the neutral base adjusted by the heuristics
// and returns the top N, score descending with recency breaking
// near-ties.
func (f *FallbackRanker) Rank(items []RawNewsItem) []RankedNewsItem {
	ranked := make([]RankedNewsItem, 0, len(items))
	for _, item := range items {
		score := f.heur.Apply(fallbackBase, item)
		ranked = append(ranked, RankedNewsItem{
			RawNewsItem:  item,
			RiskScore:    score,
			ImpactReason: fmt.Sprintf("Heuristic ranking (AI scoring unavailable): recency, source and keyword signals place this at %.1f/10", score),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if math.Abs(ranked[i].RiskScore-ranked[j].RiskScore) > tieEpsilon {
			return ranked[i].RiskScore > ranked[j].RiskScore
		}
		return newerPublished(ranked[i].RawNewsItem, ranked[j].RawNewsItem)
	})

	if len(ranked) > f.topN {
		ranked = ranked[:f.topN]
	}
	return ranked
}
