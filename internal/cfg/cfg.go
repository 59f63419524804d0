// Package cfg holds the application configuration, registered as flags
// and fillable from CCR_-prefixed environment variables by main.
package cfg

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Config collects the app-specific settings; transport, logging, and
// observability packages register their own.
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	APIToken              string

	SearchProvider  string
	SerperAPIKey    string
	SerperEndpoint  string
	AnthropicAPIKey string
	ClaudeModel     string
	QuoteEndpoint   string
	QuoteAPIKey     string

	DatabaseURL string
	RedisAddr   string

	Regions          string
	PerRegionCap     int
	MaxRankItems     int
	TopN             int
	DedupeSimilarity float64
	AcceptThreshold  float64
	ScorerTimeoutSec int
	TriageBudgetSec  int
	PriorityCountry  string
	GeoFocus         string
	ForecastTTLMin   int
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.APIToken, "api-token", "", "bearer token required on API routes")

	fs.StringVar(&c.SearchProvider, "search-provider", "serper", "news search backend: serper or googlenews")
	fs.StringVar(&c.SerperAPIKey, "serper-api-key", "", "API key for the Serper news search backend")
	fs.StringVar(&c.SerperEndpoint, "serper-endpoint", "", "Serper endpoint override (empty = public API)")
	fs.StringVar(&c.AnthropicAPIKey, "anthropic-api-key", "", "API key for the Claude model backend")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-20250514", "Claude model for ranking and forecasts")
	fs.StringVar(&c.QuoteEndpoint, "quote-endpoint", "", "price quote API endpoint (empty disables /api/v1/prices)")
	fs.StringVar(&c.QuoteAPIKey, "quote-api-key", "", "price quote API key")

	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL for run history (empty = in-memory)")
	fs.StringVar(&c.RedisAddr, "redis-addr", "", "redis address or URL for the forecast cache (empty = in-memory)")

	fs.StringVar(&c.Regions, "regions", "us,gb,de,fr,jp,cn,in,th", "comma-separated country codes for regional news collection")
	fs.IntVar(&c.PerRegionCap, "per-region-cap", 10, "max search results kept per region (1..50)")
	fs.IntVar(&c.MaxRankItems, "max-rank-items", 8, "max articles sent to the model ranking call (1..20)")
	fs.IntVar(&c.TopN, "top-n", 5, "ranked items returned per triage run (1..10)")
	fs.Float64Var(&c.DedupeSimilarity, "dedupe-similarity", 0.7, "token-overlap ratio treated as duplicate (0..1]")
	fs.Float64Var(&c.AcceptThreshold, "accept-threshold", 3.0, "minimum combined score to keep an item (1..10)")
	fs.IntVar(&c.ScorerTimeoutSec, "scorer-timeout-seconds", 10, "model ranking call budget in seconds (1..60)")
	fs.IntVar(&c.TriageBudgetSec, "triage-budget-seconds", 45, "overall triage run budget in seconds (5..300)")
	fs.StringVar(&c.PriorityCountry, "priority-country", "Thailand", "country whose mention gets the largest geographic boost")
	fs.StringVar(&c.GeoFocus, "geo-focus", "Thailand,China,Japan,India,Vietnam,Singapore,Indonesia,Malaysia", "comma-separated regional focus for the geographic boost")
	fs.IntVar(&c.ForecastTTLMin, "forecast-ttl-minutes", 15, "forecast cache TTL in minutes (1..120)")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}
	if c.APIToken == "" {
		errs = append(errs, errors.New("API_TOKEN is required"))
	}

	switch c.SearchProvider {
	case "serper":
		if c.SerperAPIKey == "" {
			errs = append(errs, errors.New("SERPER_API_KEY is required when SEARCH_PROVIDER is serper"))
		}
	case "googlenews":
		// no key required
	default:
		errs = append(errs, fmt.Errorf("invalid SEARCH_PROVIDER %q (must be serper or googlenews)", c.SearchProvider))
	}

	if c.AnthropicAPIKey == "" {
		errs = append(errs, errors.New("ANTHROPIC_API_KEY is required"))
	}
	if c.ClaudeModel == "" {
		errs = append(errs, errors.New("CLAUDE_MODEL is required"))
	}

	if len(c.RegionList()) == 0 {
		errs = append(errs, errors.New("REGIONS must list at least one country code"))
	}
	if c.PerRegionCap <= 0 || c.PerRegionCap > 50 {
		errs = append(errs, fmt.Errorf("invalid PER_REGION_CAP %d (must be 1..50)", c.PerRegionCap))
	}
	if c.MaxRankItems <= 0 || c.MaxRankItems > 20 {
		errs = append(errs, fmt.Errorf("invalid MAX_RANK_ITEMS %d (must be 1..20)", c.MaxRankItems))
	}
	if c.TopN <= 0 || c.TopN > 10 {
		errs = append(errs, fmt.Errorf("invalid TOP_N %d (must be 1..10)", c.TopN))
	}
	if c.DedupeSimilarity <= 0 || c.DedupeSimilarity > 1 {
		errs = append(errs, fmt.Errorf("invalid DEDUPE_SIMILARITY %v (must be in (0..1])", c.DedupeSimilarity))
	}
	if c.AcceptThreshold < 1 || c.AcceptThreshold > 10 {
		errs = append(errs, fmt.Errorf("invalid ACCEPT_THRESHOLD %v (must be 1..10)", c.AcceptThreshold))
	}
	if c.ScorerTimeoutSec <= 0 || c.ScorerTimeoutSec > 60 {
		errs = append(errs, fmt.Errorf("invalid SCORER_TIMEOUT_SECONDS %d (must be 1..60)", c.ScorerTimeoutSec))
	}
	if c.TriageBudgetSec < 5 || c.TriageBudgetSec > 300 {
		errs = append(errs, fmt.Errorf("invalid TRIAGE_BUDGET_SECONDS %d (must be 5..300)", c.TriageBudgetSec))
	}
	if c.ScorerTimeoutSec >= c.TriageBudgetSec {
		errs = append(errs, fmt.Errorf("SCORER_TIMEOUT_SECONDS %d must be less than TRIAGE_BUDGET_SECONDS %d", c.ScorerTimeoutSec, c.TriageBudgetSec))
	}
	if c.ForecastTTLMin <= 0 || c.ForecastTTLMin > 120 {
		errs = append(errs, fmt.Errorf("invalid FORECAST_TTL_MINUTES %d (must be 1..120)", c.ForecastTTLMin))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RegionList splits the configured region codes.
func (c *Config) RegionList() []string {
	return splitCSV(c.Regions)
}

// GeoFocusList splits the configured geographic focus names.
func (c *Config) GeoFocusList() []string {
	return splitCSV(c.GeoFocus)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
