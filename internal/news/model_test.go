package news

import (
	"testing"
	"time"
)

func TestPublishedTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"rfc3339", "2026-08-28T10:30:00Z", true},
		{"rfc1123z", "Fri, 28 Aug 2026 10:30:00 +0000", true},
		{"rfc1123", "Fri, 28 Aug 2026 10:30:00 GMT", true},
		{"datetime", "2026-08-28 10:30:00", true},
		{"date_only", "2026-08-28", true},
		{"relative_minutes", "45 minutes ago", true},
		{"relative_hours", "2 hours ago", true},
		{"relative_day", "1 day ago", true},
		{"relative_weeks", "3 weeks ago", true},
		{"relative_month", "1 month ago", true},
		{"relative_words", "yesterday", false},
		{"relative_unknown_unit", "2 moments ago", false},
		{"empty", "", false},
		{"garbage", "soon(tm)", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts, ok := publishedTime(tc.raw)
			if ok != tc.ok {
				t.Fatalf("publishedTime(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			}
			if ok && ts.IsZero() {
				t.Errorf("publishedTime(%q) returned zero time", tc.raw)
			}
		})
	}
}

func TestPublishedTime_RelativeAnchorsToNow(t *testing.T) {
	t.Parallel()

	ts, ok := publishedTime("2 hours ago")
	if !ok {
		t.Fatal("expected relative timestamp to parse")
	}
	age := time.Since(ts)
	if age < 2*time.Hour-time.Minute || age > 2*time.Hour+time.Minute {
		t.Errorf("expected an age of about two hours, got %v", age)
	}
}

func TestNewerPublished(t *testing.T) {
	t.Parallel()

	newer := RawNewsItem{PublishedAt: "2026-08-28T12:00:00Z"}
	older := RawNewsItem{PublishedAt: "2026-08-28T08:00:00Z"}
	unparseable := RawNewsItem{PublishedAt: "yesterday"}

	if !newerPublished(newer, older) {
		t.Error("newer item should rank first")
	}
	if newerPublished(older, newer) {
		t.Error("older item should not rank first")
	}
	if !newerPublished(older, unparseable) {
		t.Error("parseable timestamp should beat unparseable")
	}
	if newerPublished(unparseable, unparseable) {
		t.Error("two unparseable timestamps should tie")
	}
}

func TestMostRecent(t *testing.T) {
	t.Parallel()

	items := []RawNewsItem{
		{URL: "old", PublishedAt: "2026-08-26T10:00:00Z"},
		{URL: "newest", PublishedAt: "2026-08-28T10:00:00Z"},
		{URL: "none", PublishedAt: ""},
		{URL: "mid", PublishedAt: "2026-08-27T10:00:00Z"},
	}

	got := mostRecent(items, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	want := []string{"newest", "mid", "old"}
	for i, url := range want {
		if got[i].URL != url {
			t.Errorf("position %d = %q, want %q", i, got[i].URL, url)
		}
	}
}
