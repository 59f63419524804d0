package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/tkhongsap/commodity-currency-research/internal/forecast"
)

func TestSetAndGet(t *testing.T) {
	t.Parallel()

	c := New()
	ctx := context.Background()

	o := &forecast.Outlook{Symbol: "XAU", Direction: "up", Confidence: 70}
	if err := c.Set(ctx, "forecast:xau", o, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, "forecast:xau")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Symbol != "XAU" || got.Direction != "up" {
		t.Errorf("unexpected outlook: %+v", got)
	}

	// returned value is a copy
	got.Direction = "down"
	again, _, _ := c.Get(ctx, "forecast:xau")
	if again.Direction != "up" {
		t.Error("Get should return a copy, not shared state")
	}
}

func TestGet_Miss(t *testing.T) {
	t.Parallel()

	c := New()
	if _, ok, err := c.Get(context.Background(), "forecast:none"); err != nil || ok {
		t.Errorf("expected clean miss, ok=%v err=%v", ok, err)
	}
}

func TestGet_Expired(t *testing.T) {
	t.Parallel()

	c := New()
	ctx := context.Background()

	o := &forecast.Outlook{Symbol: "XAU"}
	if err := c.Set(ctx, "forecast:xau", o, -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, ok, _ := c.Get(ctx, "forecast:xau"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestSet_SweepsExpired(t *testing.T) {
	t.Parallel()

	c := New()
	ctx := context.Background()

	if err := c.Set(ctx, "forecast:old", &forecast.Outlook{Symbol: "OLD"}, -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, "forecast:new", &forecast.Outlook{Symbol: "NEW"}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	c.mu.Lock()
	_, oldPresent := c.items["forecast:old"]
	c.mu.Unlock()
	if oldPresent {
		t.Error("expected expired entry swept on write")
	}
}
