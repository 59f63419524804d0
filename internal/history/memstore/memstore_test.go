package memstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/tkhongsap/commodity-currency-research/internal/history"
)

func testRun(id string, at time.Time) *history.Run {
	return &history.Run{
		ID:        id,
		Query:     "crude oil",
		Stage:     "done",
		ItemCount: 5,
		Collected: 24,
		Duration:  3.2,
		CreatedAt: at,
	}
}

func TestPutAndGet(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Put(ctx, testRun("run-1", now)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected run to exist")
	}
	if got.Query != "crude oil" || got.Stage != "done" {
		t.Errorf("unexpected run: %+v", got)
	}

	// returned value is a copy
	got.Stage = "mutated"
	again, _, _ := s.Get(ctx, "run-1")
	if again.Stage != "done" {
		t.Error("Get should return a copy, not shared state")
	}
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected missing run")
	}
}

func TestPut_UpdatesExisting(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	run := testRun("run-1", now)
	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put: %v", err)
	}
	run.Stage = "fallback_scoring"
	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put update: %v", err)
	}

	got, _, _ := s.Get(ctx, "run-1")
	if got.Stage != "fallback_scoring" {
		t.Errorf("stage = %q, want updated value", got.Stage)
	}

	runs, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run after update, got %d", len(runs))
	}
}

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("run-%d", i)
		if err := s.Put(ctx, testRun(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	runs, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-4" || runs[2].ID != "run-2" {
		t.Errorf("runs not newest first: %s, %s, %s", runs[0].ID, runs[1].ID, runs[2].ID)
	}
}

func TestPut_EvictsOldest(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < maxRuns+10; i++ {
		id := fmt.Sprintf("run-%d", i)
		if err := s.Put(ctx, testRun(id, base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	if _, ok, _ := s.Get(ctx, "run-0"); ok {
		t.Error("oldest run should have been evicted")
	}
	if _, ok, _ := s.Get(ctx, fmt.Sprintf("run-%d", maxRuns+9)); !ok {
		t.Error("newest run should be present")
	}
}
