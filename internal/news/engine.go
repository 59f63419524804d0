package news

import (
	"context"
	"errors"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/tkhongsap/commodity-currency-research/internal/news")

// ErrTimedOut is returned when the overall run budget is exhausted. It
// is the only failure a caller sees; every internal fault degrades the
// result instead.
var ErrTimedOut = errors.New("news triage timed out")

// EngineHooks receives engine observations, typically wired to
// Prometheus by main.
type EngineHooks struct {
	OnSearch   func(region string, duration float64, err error)
	OnLLMCall  func(duration float64, err error)
	OnFallback func(reason FallbackReason)
	OnComplete func(stage Stage, fallbackUsed bool, duration float64, collected, deduplicated, returned int)
}

// Engine orchestrates one triage run: collect, dedupe, score, and the
// fallback branch, under an overall deadline.
type Engine struct {
	collector  *Collector
	scorer     *Scorer
	fallback   *FallbackRanker
	dedupeSim  float64
	minResults int
	logger     log.Logger
	hooks      EngineHooks
}

// NewEngine creates a triage engine. dedupeSim is the token-overlap
// duplicate threshold, minResults the floor below which broader query
// phrasings are tried.
func NewEngine(collector *Collector, scorer *Scorer, fallback *FallbackRanker, dedupeSim float64, minResults int, logger log.Logger, hooks EngineHooks) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	if dedupeSim <= 0 || dedupeSim > 1 {
		dedupeSim = 0.7
	}
	if minResults <= 0 {
		minResults = 3
	}
	e := &Engine{
		collector:  collector,
		scorer:     scorer,
		fallback:   fallback,
		dedupeSim:  dedupeSim,
		minResults: minResults,
		logger:     logger,
		hooks:      hooks,
	}
	collector.SetSearchHook(hooks.OnSearch)
	scorer.SetLLMHook(hooks.OnLLMCall)
	return e
}

// Run executes the pipeline for one instrument or free-text query. The
// caller bounds the run with its context deadline; exceeding it returns
// the partial result alongside ErrTimedOut.
func (e *Engine) Run(ctx context.Context, input string) (*TriageResult, error) {
	start := time.Now()

	ctx, span := tracer.Start(ctx, "news.Engine.Run", trace.WithAttributes(
		attribute.String("news.query", input),
	))
	defer span.End()

	result := &TriageResult{
		ID:        ulid.Make().String(),
		Query:     BuildQuery(input),
		Stage:     StageCollecting,
		CreatedAt: time.Now().UTC(),
	}

	L := e.logger.With("triage_id", result.ID, "query", input)

	items, failures := e.collect(ctx, L, result.Query, input)
	result.Collected = len(items)
	result.RegionFailures = failures
	if timedOut := e.checkDeadline(ctx, result, start, span); timedOut {
		return result, ErrTimedOut
	}

	result.Stage = StageDeduplicating
	deduped := Dedupe(items, e.dedupeSim)
	result.Deduplicated = len(deduped)
	if timedOut := e.checkDeadline(ctx, result, start, span); timedOut {
		return result, ErrTimedOut
	}

	result.Stage = StageScoring
	ranked, err := e.scorer.Score(ctx, deduped, input)
	if err != nil {
		if ctx.Err() != nil {
			result.Stage = StageTimedOut
			e.finish(result, start, span)
			return result, ErrTimedOut
		}

		reason := classifyScorerError(err)
		L.Warn(ctx, "model scoring unavailable, using heuristic fallback",
			"reason", string(reason),
			"error", err.Error(),
		)
		if e.hooks.OnFallback != nil {
			e.hooks.OnFallback(reason)
		}

		result.Stage = StageFallbackScoring
		ranked = e.fallback.Rank(deduped)
		result.FallbackUsed = true
	}

	result.Items = ranked
	result.Stage = StageDone
	e.finish(result, start, span)

	L.Info(ctx, "triage complete",
		"stage", string(result.Stage),
		"fallback", result.FallbackUsed,
		"collected", result.Collected,
		"deduplicated", result.Deduplicated,
		"returned", len(result.Items),
		"region_failures", result.RegionFailures,
		"duration", result.Duration,
	)
	return result, nil
}

// collect runs the primary query and, when it comes back thin, the
// bounded set of broader phrasings.
func (e *Engine) collect(ctx context.Context, L log.Logger, primary, input string) ([]RawNewsItem, int) {
	items, failures := e.collector.Collect(ctx, primary)
	if len(items) >= e.minResults {
		return items, failures
	}

	for _, alt := range BroaderQueries(input) {
		if ctx.Err() != nil {
			break
		}
		L.Info(ctx, "broadening query", "alternate", alt, "have", len(items))
		more, failed := e.collector.Collect(ctx, alt)
		failures += failed
		items = append(items, more...)
		if len(items) >= e.minResults {
			break
		}
	}
	return items, failures
}

func (e *Engine) checkDeadline(ctx context.Context, result *TriageResult, start time.Time, span trace.Span) bool {
	if ctx.Err() == nil {
		return false
	}
	result.Stage = StageTimedOut
	e.finish(result, start, span)
	return true
}

func (e *Engine) finish(result *TriageResult, start time.Time, span trace.Span) {
	result.Duration = time.Since(start).Seconds()
	span.SetAttributes(
		attribute.String("news.stage", string(result.Stage)),
		attribute.Bool("news.fallback", result.FallbackUsed),
		attribute.Int("news.items", len(result.Items)),
	)
	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(result.Stage, result.FallbackUsed, result.Duration, result.Collected, result.Deduplicated, len(result.Items))
	}
}

func classifyScorerError(err error) FallbackReason {
	var se *scorerError
	if errors.As(err, &se) {
		return se.reason
	}
	return ReasonTransport
}
