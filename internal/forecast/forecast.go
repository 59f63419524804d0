// Package forecast produces short-term AI price outlooks per
// instrument, behind an expiring cache.
package forecast

import (
	"context"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"
)

// Outlook is the model's short-term view on one instrument.
type Outlook struct {
	Symbol     string    `json:"symbol"`
	Direction  string    `json:"direction"`  // "up", "down", or "sideways"
	Confidence int       `json:"confidence"` // 0..100
	Narrative  string    `json:"narrative"`
	Model      string    `json:"model,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Generator is the model backend producing outlooks.
type Generator interface {
	Outlook(ctx context.Context, symbol string) (*Outlook, error)
}

// Cache is the expiring key-value store in front of the generator.
type Cache interface {
	Get(ctx context.Context, key string) (*Outlook, bool, error)
	Set(ctx context.Context, key string, o *Outlook, ttl time.Duration) error
}

// Service serves cached outlooks, generating on miss. Cache races are
// benign: concurrent misses generate twice and the later write wins.
type Service struct {
	generator Generator
	cache     Cache
	ttl       time.Duration
	logger    log.Logger
}

// NewService creates a forecast service.
func NewService(generator Generator, cache Cache, ttl time.Duration, logger log.Logger) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		generator: generator,
		cache:     cache,
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the outlook for a symbol, from cache when fresh.
func (s *Service) Get(ctx context.Context, symbol string) (*Outlook, error) {
	key := cacheKey(symbol)

	if s.cache != nil {
		if o, ok, err := s.cache.Get(ctx, key); err != nil {
			// cache trouble degrades to a generator call
			s.logger.Warn(ctx, "forecast cache read failed", "symbol", symbol, "error", err.Error())
		} else if ok {
			return o, nil
		}
	}

	o, err := s.generator.Outlook(ctx, symbol)
	if err != nil {
		return nil, err
	}
	o.Symbol = strings.ToUpper(symbol)
	o.CreatedAt = time.Now().UTC()

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, o, s.ttl); err != nil {
			s.logger.Warn(ctx, "forecast cache write failed", "symbol", symbol, "error", err.Error())
		}
	}
	return o, nil
}

func cacheKey(symbol string) string {
	return "forecast:" + strings.ToLower(strings.TrimSpace(symbol))
}
