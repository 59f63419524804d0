// Package pgstore provides a PostgreSQL implementation of history.Store.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tkhongsap/commodity-currency-research/internal/history"
)

var tracer = otel.Tracer("github.com/tkhongsap/commodity-currency-research/internal/history/pgstore")

//go:embed schema.sql
var schema string

// Store persists triage run summaries in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema on the given pool and returns a ready Store.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const runColumns = `id, query, stage, fallback_used, item_count, collected, region_failures, duration_s, created_at`

// Put inserts or updates a run summary.
func (s *Store) Put(ctx context.Context, run *history.Run) error {
	ctx, span := tracer.Start(ctx, "pgstore.Put", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
	))
	defer span.End()

	query := `INSERT INTO triage_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			stage = EXCLUDED.stage,
			fallback_used = EXCLUDED.fallback_used,
			item_count = EXCLUDED.item_count,
			collected = EXCLUDED.collected,
			region_failures = EXCLUDED.region_failures,
			duration_s = EXCLUDED.duration_s`

	_, err := s.pool.Exec(ctx, query,
		run.ID, run.Query, run.Stage, run.FallbackUsed, run.ItemCount,
		run.Collected, run.RegionFailures, run.Duration, run.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Get retrieves a run summary by ID.
func (s *Store) Get(ctx context.Context, id string) (*history.Run, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Get", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT ` + runColumns + ` FROM triage_runs WHERE id = $1`
	run, err := scanRun(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	return run, true, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*history.Run, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Recent", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM triage_runs ORDER BY created_at DESC LIMIT $1`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*history.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (*history.Run, error) {
	var run history.Run
	err := row.Scan(
		&run.ID, &run.Query, &run.Stage, &run.FallbackUsed, &run.ItemCount,
		&run.Collected, &run.RegionFailures, &run.Duration, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
