package news

import (
	"context"
	"errors"
	"time"

	"github.com/linnemanlabs/go-core/log"

	"github.com/tkhongsap/commodity-currency-research/internal/history"
)

// Service is the business boundary for news triage: it owns the overall
// run budget and records run summaries for the history API. Triage is
// synchronous; the caller gets the result or ErrTimedOut.
type Service struct {
	engine *Engine
	store  history.Store
	budget time.Duration
	logger log.Logger
}

// NewService creates a news triage service. budget is the outer
// wall-clock limit per run, distinct from the scorer's model budget.
func NewService(engine *Engine, store history.Store, budget time.Duration, logger log.Logger) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	if budget <= 0 {
		budget = 45 * time.Second
	}
	return &Service{
		engine: engine,
		store:  store,
		budget: budget,
		logger: logger,
	}
}

// Triage runs the pipeline for a query or instrument name and records
// the run. Internal component failures degrade the result; only outer
// budget exhaustion is returned as an error.
func (s *Service) Triage(ctx context.Context, input string) (*TriageResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	result, err := s.engine.Run(runCtx, input)
	if result != nil {
		s.record(ctx, input, result)
	}
	if err != nil {
		if errors.Is(err, ErrTimedOut) {
			return nil, ErrTimedOut
		}
		return nil, err
	}
	return result, nil
}

// record persists the run summary. History is best-effort; a store
// failure never affects the triage response.
func (s *Service) record(ctx context.Context, input string, result *TriageResult) {
	if s.store == nil {
		return
	}
	run := &history.Run{
		ID:             result.ID,
		Query:          input,
		Stage:          string(result.Stage),
		FallbackUsed:   result.FallbackUsed,
		ItemCount:      len(result.Items),
		Collected:      result.Collected,
		RegionFailures: result.RegionFailures,
		Duration:       result.Duration,
		CreatedAt:      result.CreatedAt,
	}
	if err := s.store.Put(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Error(ctx, err, "failed to record triage run", "triage_id", result.ID)
	}
}
