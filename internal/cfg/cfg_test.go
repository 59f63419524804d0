package cfg

import (
	"flag"
	"strings"
	"testing"
)

// validBase returns a Config with all required fields set to valid values.
func validBase() Config {
	return Config{
		DrainSeconds:          60,
		ShutdownBudgetSeconds: 90,
		APIPort:               8080,
		APIToken:              "test-token-123",
		SearchProvider:        "serper",
		SerperAPIKey:          "serper-test-key",
		AnthropicAPIKey:       "sk-test-key",
		ClaudeModel:           "claude-sonnet-4-20250514",
		Regions:               "us,gb,th",
		PerRegionCap:          10,
		MaxRankItems:          8,
		TopN:                  5,
		DedupeSimilarity:      0.7,
		AcceptThreshold:       3.0,
		ScorerTimeoutSec:      10,
		TriageBudgetSec:       45,
		PriorityCountry:       "Thailand",
		GeoFocus:              "Thailand,China,Japan",
		ForecastTTLMin:        15,
	}
}

func TestRegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse empty args: %v", err)
	}

	if c.DrainSeconds != 60 {
		t.Errorf("DrainSeconds = %d, want 60", c.DrainSeconds)
	}
	if c.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", c.APIPort)
	}
	if c.SearchProvider != "serper" {
		t.Errorf("SearchProvider = %q, want %q", c.SearchProvider, "serper")
	}
	if c.Regions != "us,gb,de,fr,jp,cn,in,th" {
		t.Errorf("Regions = %q, want default eight regions", c.Regions)
	}
	if c.TopN != 5 {
		t.Errorf("TopN = %d, want 5", c.TopN)
	}
	if c.DedupeSimilarity != 0.7 {
		t.Errorf("DedupeSimilarity = %v, want 0.7", c.DedupeSimilarity)
	}
	if c.AcceptThreshold != 3.0 {
		t.Errorf("AcceptThreshold = %v, want 3.0", c.AcceptThreshold)
	}
	if c.ScorerTimeoutSec != 10 {
		t.Errorf("ScorerTimeoutSec = %d, want 10", c.ScorerTimeoutSec)
	}
	if c.TriageBudgetSec != 45 {
		t.Errorf("TriageBudgetSec = %d, want 45", c.TriageBudgetSec)
	}
	if c.PriorityCountry != "Thailand" {
		t.Errorf("PriorityCountry = %q, want %q", c.PriorityCountry, "Thailand")
	}
	if c.ForecastTTLMin != 15 {
		t.Errorf("ForecastTTLMin = %d, want 15", c.ForecastTTLMin)
	}
}

func TestRegisterFlags_Override(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	args := []string{
		"-http-port", "9090",
		"-search-provider", "googlenews",
		"-regions", "th,sg",
		"-top-n", "3",
		"-dedupe-similarity", "0.8",
		"-triage-budget-seconds", "60",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if c.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", c.APIPort)
	}
	if c.SearchProvider != "googlenews" {
		t.Errorf("SearchProvider = %q, want %q", c.SearchProvider, "googlenews")
	}
	if c.Regions != "th,sg" {
		t.Errorf("Regions = %q, want %q", c.Regions, "th,sg")
	}
	if c.TopN != 3 {
		t.Errorf("TopN = %d, want 3", c.TopN)
	}
	if c.DedupeSimilarity != 0.8 {
		t.Errorf("DedupeSimilarity = %v, want 0.8", c.DedupeSimilarity)
	}
	if c.TriageBudgetSec != 60 {
		t.Errorf("TriageBudgetSec = %d, want 60", c.TriageBudgetSec)
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()

	c := validBase()
	if err := c.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"missing_api_token", func(c *Config) { c.APIToken = "" }, "API_TOKEN"},
		{"bad_port", func(c *Config) { c.APIPort = 0 }, "HTTP_PORT"},
		{"drain_exceeds_budget", func(c *Config) { c.DrainSeconds = 100; c.ShutdownBudgetSeconds = 90 }, "SHUTDOWN_BUDGET_SECONDS"},
		{"unknown_provider", func(c *Config) { c.SearchProvider = "bing" }, "SEARCH_PROVIDER"},
		{"serper_without_key", func(c *Config) { c.SerperAPIKey = "" }, "SERPER_API_KEY"},
		{"missing_anthropic_key", func(c *Config) { c.AnthropicAPIKey = "" }, "ANTHROPIC_API_KEY"},
		{"missing_model", func(c *Config) { c.ClaudeModel = "" }, "CLAUDE_MODEL"},
		{"no_regions", func(c *Config) { c.Regions = " , ," }, "REGIONS"},
		{"cap_too_high", func(c *Config) { c.PerRegionCap = 99 }, "PER_REGION_CAP"},
		{"top_n_zero", func(c *Config) { c.TopN = 0 }, "TOP_N"},
		{"similarity_over_one", func(c *Config) { c.DedupeSimilarity = 1.5 }, "DEDUPE_SIMILARITY"},
		{"threshold_out_of_range", func(c *Config) { c.AcceptThreshold = 0.5 }, "ACCEPT_THRESHOLD"},
		{"scorer_exceeds_budget", func(c *Config) { c.ScorerTimeoutSec = 50; c.TriageBudgetSec = 45 }, "SCORER_TIMEOUT_SECONDS"},
		{"ttl_zero", func(c *Config) { c.ForecastTTLMin = 0 }, "FORECAST_TTL_MINUTES"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := validBase()
			tc.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantSub)
			}
		})
	}
}

func TestValidate_GoogleNewsNeedsNoKey(t *testing.T) {
	t.Parallel()

	c := validBase()
	c.SearchProvider = "googlenews"
	c.SerperAPIKey = ""
	if err := c.Validate(); err != nil {
		t.Errorf("googlenews provider should not require a serper key: %v", err)
	}
}

func TestRegionList(t *testing.T) {
	t.Parallel()

	c := Config{Regions: " us , gb ,, th "}
	got := c.RegionList()
	want := []string{"us", "gb", "th"}
	if len(got) != len(want) {
		t.Fatalf("RegionList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RegionList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGeoFocusList(t *testing.T) {
	t.Parallel()

	c := Config{GeoFocus: "Thailand, China"}
	got := c.GeoFocusList()
	if len(got) != 2 || got[0] != "Thailand" || got[1] != "China" {
		t.Errorf("GeoFocusList() = %v", got)
	}
}
