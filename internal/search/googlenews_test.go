package search

import (
	"testing"
	"time"
)

func TestWindowDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		window time.Duration
		want   int
	}{
		{0, 0},
		{-time.Hour, 0},
		{6 * time.Hour, 1},
		{24 * time.Hour, 1},
		{7 * 24 * time.Hour, 7},
		{30 * 24 * time.Hour, 30},
	}
	for _, tc := range cases {
		if got := windowDays(tc.window); got != tc.want {
			t.Errorf("windowDays(%v) = %d, want %d", tc.window, got, tc.want)
		}
	}
}

func TestSplitPublisher(t *testing.T) {
	t.Parallel()

	title, source := splitPublisher("Oil jumps after OPEC cut - Reuters")
	if title != "Oil jumps after OPEC cut" {
		t.Errorf("title = %q", title)
	}
	if source != "Reuters" {
		t.Errorf("source = %q", source)
	}

	// hyphenated headline keeps everything before the last separator
	title, source = splitPublisher("US-China trade talks stall - again - Bloomberg")
	if title != "US-China trade talks stall - again" || source != "Bloomberg" {
		t.Errorf("got %q / %q", title, source)
	}

	title, source = splitPublisher("No publisher here")
	if title != "No publisher here" || source != "" {
		t.Errorf("got %q / %q", title, source)
	}
}

func TestNewGoogleNewsClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewGoogleNewsClient(0)
	if c.maxResults != 10 {
		t.Errorf("maxResults = %d, want default 10", c.maxResults)
	}
	if c.Name() != "googlenews" {
		t.Errorf("Name() = %q", c.Name())
	}
}
