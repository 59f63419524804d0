// Package search defines the news search backend consumed by the triage
// pipeline, with interchangeable provider implementations.
package search

import (
	"context"
	"time"
)

// Result is a single raw search hit as returned by a provider.
type Result struct {
	Title   string
	Snippet string
	Link    string
	Date    string
	Source  string
}

// Provider issues one search request for a query in a given region.
// Implementations must be safe for concurrent use; the collector calls
// Search once per region in parallel.
type Provider interface {
	Search(ctx context.Context, query string, region Region, window time.Duration) ([]Result, error)
	Name() string
}

// Region is a national/linguistic search context used to diversify
// news sourcing.
type Region struct {
	Code string // lowercase ISO country code, e.g. "th"
	HL   string // interface language, e.g. "en-US"
	GL   string // geolocation, e.g. "US"
	CEID string // Google News country:lang edition, e.g. "US:en"
}

// regionProfiles maps country codes to full search contexts. Editions
// favour English where Google publishes one for the country.
var regionProfiles = map[string]Region{
	"us": {Code: "us", HL: "en-US", GL: "US", CEID: "US:en"},
	"gb": {Code: "gb", HL: "en-GB", GL: "GB", CEID: "GB:en"},
	"de": {Code: "de", HL: "de", GL: "DE", CEID: "DE:de"},
	"fr": {Code: "fr", HL: "fr", GL: "FR", CEID: "FR:fr"},
	"jp": {Code: "jp", HL: "ja", GL: "JP", CEID: "JP:ja"},
	"cn": {Code: "cn", HL: "zh-CN", GL: "CN", CEID: "CN:zh-Hans"},
	"in": {Code: "in", HL: "en-IN", GL: "IN", CEID: "IN:en"},
	"th": {Code: "th", HL: "th", GL: "TH", CEID: "TH:th"},
	"sg": {Code: "sg", HL: "en-SG", GL: "SG", CEID: "SG:en"},
	"au": {Code: "au", HL: "en-AU", GL: "AU", CEID: "AU:en"},
	"br": {Code: "br", HL: "pt-BR", GL: "BR", CEID: "BR:pt-419"},
	"ae": {Code: "ae", HL: "en", GL: "AE", CEID: "AE:en"},
}

// RegionProfile resolves a country code to a full Region. Unknown codes
// get a minimal profile so a misconfigured region degrades to a plain
// country-scoped search instead of failing startup.
func RegionProfile(code string) Region {
	if r, ok := regionProfiles[code]; ok {
		return r
	}
	return Region{Code: code, HL: "en", GL: code, CEID: code + ":en"}
}

// Regions resolves a list of country codes, skipping empties.
func Regions(codes []string) []Region {
	out := make([]Region, 0, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		out = append(out, RegionProfile(c))
	}
	return out
}
