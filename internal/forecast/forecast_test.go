package forecast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockGenerator counts calls and serves a canned outlook.
type mockGenerator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockGenerator) Outlook(_ context.Context, symbol string) (*Outlook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &Outlook{
		Direction:  "up",
		Confidence: 70,
		Narrative:  "supply constraints support " + symbol,
	}, nil
}

// mockCache is a map-backed Cache with injectable failures.
type mockCache struct {
	mu     sync.Mutex
	items  map[string]*Outlook
	getErr error
	setErr error
	sets   int
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string]*Outlook)}
}

func (m *mockCache) Get(_ context.Context, key string) (*Outlook, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	o, ok := m.items[key]
	return o, ok, nil
}

func (m *mockCache) Set(_ context.Context, key string, o *Outlook, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = o
	return nil
}

func TestGet_GeneratesAndCaches(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	cache := newMockCache()
	svc := NewService(gen, cache, time.Minute, nil)

	o, err := svc.Get(context.Background(), "xau")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if o.Symbol != "XAU" {
		t.Errorf("symbol = %q, want normalized %q", o.Symbol, "XAU")
	}
	if o.CreatedAt.IsZero() {
		t.Error("missing created_at")
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}

	// second call is served from cache
	if _, err := svc.Get(context.Background(), "xau"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
}

func TestGet_CacheKeyIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	svc := NewService(gen, newMockCache(), time.Minute, nil)

	if _, err := svc.Get(context.Background(), "WTI"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), " wti "); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1 across case variants", gen.calls)
	}
}

func TestGet_CacheReadFailureDegradesToGenerator(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	svc := NewService(gen, cache, time.Minute, nil)

	o, err := svc.Get(context.Background(), "xau")
	if err != nil {
		t.Fatalf("Get should survive a cache read failure: %v", err)
	}
	if o == nil || gen.calls != 1 {
		t.Errorf("expected generator hit, calls=%d", gen.calls)
	}
}

func TestGet_CacheWriteFailureIsBestEffort(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	cache := newMockCache()
	cache.setErr = errors.New("redis down")
	svc := NewService(gen, cache, time.Minute, nil)

	if _, err := svc.Get(context.Background(), "xau"); err != nil {
		t.Fatalf("Get should survive a cache write failure: %v", err)
	}
}

func TestGet_GeneratorError(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{err: errors.New("model unavailable")}
	svc := NewService(gen, newMockCache(), time.Minute, nil)

	if _, err := svc.Get(context.Background(), "xau"); err == nil {
		t.Fatal("expected generator error to surface")
	}
}

func TestGet_NilCache(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	svc := NewService(gen, nil, time.Minute, nil)

	if _, err := svc.Get(context.Background(), "xau"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "xau"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2 without a cache", gen.calls)
	}
}
