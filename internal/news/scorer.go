package news

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/linnemanlabs/go-core/log"
)

// FallbackReason classifies why the model scoring path was abandoned.
// Logged and counted for operability; never surfaced to callers.
type FallbackReason string

const (
	ReasonTimeout   FallbackReason = "timeout"
	ReasonTransport FallbackReason = "transport"
	ReasonMalformed FallbackReason = "malformed"
	ReasonEmpty     FallbackReason = "empty"
)

// scorerError carries the failure classification to the engine.
type scorerError struct {
	reason FallbackReason
	err    error
}

func (e *scorerError) Error() string { return fmt.Sprintf("scorer %s: %v", e.reason, e.err) }
func (e *scorerError) Unwrap() error { return e.err }

// Scorer ranks deduplicated items with one model call and layers the
// deterministic heuristics on top of the model's base scores.
type Scorer struct {
	ranker          Ranker
	heur            Heuristics
	maxItems        int
	acceptThreshold float64
	topN            int
	timeout         time.Duration
	logger          log.Logger
	onLLMCall       func(duration float64, err error)
}

// NewScorer creates a scorer. maxItems bounds the model call cost,
// acceptThreshold drops low-impact items, timeout is the inner model
// budget independent of the run's overall deadline.
func NewScorer(ranker Ranker, heur Heuristics, maxItems int, acceptThreshold float64, topN int, timeout time.Duration, logger log.Logger) *Scorer {
	if logger == nil {
		logger = log.Nop()
	}
	if maxItems <= 0 {
		maxItems = 8
	}
	if topN <= 0 {
		topN = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scorer{
		ranker:          ranker,
		heur:            heur,
		maxItems:        maxItems,
		acceptThreshold: acceptThreshold,
		topN:            topN,
		timeout:         timeout,
		logger:          logger,
	}
}

// SetLLMHook registers a per-call observation callback.
func (s *Scorer) SetLLMHook(fn func(duration float64, err error)) {
	s.onLLMCall = fn
}

// Score ranks items via the model. Any failure - timeout, transport,
// malformed output, or zero accepted items - comes back as a
// *scorerError so the engine can take the fallback branch.
func (s *Scorer) Score(ctx context.Context, items []RawNewsItem, instrument string) ([]RankedNewsItem, error) {
	if len(items) == 0 {
		return nil, &scorerError{reason: ReasonEmpty, err: errors.New("no items to score")}
	}

	candidates := mostRecent(items, s.maxItems)

	req := &RankRequest{Instrument: instrument}
	for i, item := range candidates {
		req.Candidates = append(req.Candidates, RankCandidate{
			Index:       i,
			Title:       item.Title,
			Description: item.Description,
			Source:      item.Source,
			PublishedAt: item.PublishedAt,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.ranker.Rank(callCtx, req)
	if s.onLLMCall != nil {
		s.onLLMCall(time.Since(start).Seconds(), err)
	}
	if err != nil {
		reason := ReasonTransport
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() != nil {
			reason = ReasonTimeout
		}
		return nil, &scorerError{reason: reason, err: err}
	}

	ranked, err := s.applyScores(candidates, resp)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, &scorerError{reason: ReasonEmpty, err: errors.New("no items above acceptance threshold")}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RiskScore != ranked[j].RiskScore {
			return ranked[i].RiskScore > ranked[j].RiskScore
		}
		return newerPublished(ranked[i].RawNewsItem, ranked[j].RawNewsItem)
	})
	if len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}
	return ranked, nil
}

// applyScores validates the model output and combines it with the
// heuristic multipliers. Out-of-range indices or non-finite scores mark
// the whole response malformed: a backend that returns garbage for one
// entry is not trusted for the rest.
func (s *Scorer) applyScores(candidates []RawNewsItem, resp *RankResponse) ([]RankedNewsItem, error) {
	if resp == nil || len(resp.Scores) == 0 {
		return nil, &scorerError{reason: ReasonMalformed, err: errors.New("empty ranking response")}
	}

	ranked := make([]RankedNewsItem, 0, len(resp.Scores))
	seen := make(map[int]bool, len(resp.Scores))

	for _, sc := range resp.Scores {
		if sc.Index < 0 || sc.Index >= len(candidates) {
			return nil, &scorerError{reason: ReasonMalformed, err: fmt.Errorf("index %d out of range", sc.Index)}
		}
		if math.IsNaN(sc.Score) || sc.Score < 1 || sc.Score > 10 {
			return nil, &scorerError{reason: ReasonMalformed, err: fmt.Errorf("score %v out of range for index %d", sc.Score, sc.Index)}
		}
		if seen[sc.Index] {
			continue
		}
		seen[sc.Index] = true

		item := candidates[sc.Index]
		final := s.heur.Apply(sc.Score, item)
		if final < s.acceptThreshold {
			continue
		}
		ranked = append(ranked, RankedNewsItem{
			RawNewsItem:  item,
			RiskScore:    final,
			ImpactReason: sc.Reason,
		})
	}
	return ranked, nil
}

// mostRecent returns up to n items ordered newest first; items with
// unparseable timestamps sort last.
func mostRecent(items []RawNewsItem, n int) []RawNewsItem {
	sorted := make([]RawNewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newerPublished(sorted[i], sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// newerPublished reports whether a was published after b, with
// unparseable timestamps treated as oldest.
func newerPublished(a, b RawNewsItem) bool {
	ta, okA := publishedTime(a.PublishedAt)
	tb, okB := publishedTime(b.PublishedAt)
	if okA != okB {
		return okA
	}
	if !okA {
		return false
	}
	return ta.After(tb)
}
