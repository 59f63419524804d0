package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQuotes_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "XAU,WTI" {
			t.Errorf("symbols = %q, want %q", got, "XAU,WTI")
		}
		if got := r.Header.Get("X-API-KEY"); got != "test-key" {
			t.Errorf("api key = %q, want %q", got, "test-key")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quotes":[
			{"symbol":"XAU","name":"Gold","price":2410.5,"change":12.3,"change_percent":0.51,"currency":"USD"},
			{"symbol":"WTI","name":"Crude Oil WTI","price":78.2,"change":-0.4,"change_percent":-0.51,"currency":"USD"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	quotes, err := c.Quotes(context.Background(), []string{"XAU", "WTI"})
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Symbol != "XAU" || quotes[0].Price != 2410.5 {
		t.Errorf("unexpected quote: %+v", quotes[0])
	}
}

func TestQuotes_EmptySymbols(t *testing.T) {
	t.Parallel()

	c := New("http://unused.invalid", "")
	quotes, err := c.Quotes(context.Background(), nil)
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}
	if quotes != nil {
		t.Errorf("expected nil quotes, got %v", quotes)
	}
}

func TestQuotes_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.Quotes(context.Background(), []string{"XAU"}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestQuotes_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.Quotes(context.Background(), []string{"XAU"}); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestQuotes_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, "")
	if _, err := c.Quotes(ctx, []string{"XAU"}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
