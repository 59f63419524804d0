// Package news implements the market-news triage pipeline: multi-region
// collection, deduplication, hybrid AI+heuristic risk scoring, and a
// deterministic fallback ranking used when the model is unavailable.
package news
