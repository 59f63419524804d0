// Package history records triage run summaries for the read-only
// history API.
package history

import (
	"context"
	"time"
)

// Run is one triage run summary. Item payloads are not persisted; only
// run metadata outlives the response.
type Run struct {
	ID             string    `json:"id"`
	Query          string    `json:"query"`
	Stage          string    `json:"stage"`
	FallbackUsed   bool      `json:"fallback_used"`
	ItemCount      int       `json:"item_count"`
	Collected      int       `json:"collected"`
	RegionFailures int       `json:"region_failures"`
	Duration       float64   `json:"duration_seconds"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store is the persistence interface for triage run summaries.
type Store interface {
	Put(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, bool, error)
	Recent(ctx context.Context, limit int) ([]*Run, error)
}
