package news

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the triage subsystem.
type Metrics struct {
	TriagesTotal   *prometheus.CounterVec
	TriageDuration *prometheus.HistogramVec
	FallbacksTotal *prometheus.CounterVec
	RegionSearches *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	LLMCallsTotal  *prometheus.CounterVec
	LLMDuration    prometheus.Histogram
	ItemsCollected prometheus.Histogram
	ItemsDeduped   prometheus.Histogram
	ItemsReturned  prometheus.Histogram
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TriagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ccr_triages_total",
			Help: "Total triage runs by final stage.",
		}, []string{"stage"}),
		TriageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ccr_triage_duration_seconds",
			Help:    "Duration of triage runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s .. ~64s
		}, []string{"stage", "fallback"}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ccr_triage_fallbacks_total",
			Help: "Fallback activations by failure classification.",
		}, []string{"reason"}),
		RegionSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ccr_region_searches_total",
			Help: "Regional search calls by region and outcome.",
		}, []string{"region", "outcome"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ccr_region_search_duration_seconds",
			Help:    "Duration of individual regional search calls.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8), // 0.1s .. ~12.8s
		}, []string{"region"}),
		LLMCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ccr_llm_calls_total",
			Help: "Model ranking calls by outcome.",
		}, []string{"outcome"}),
		LLMDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ccr_llm_call_duration_seconds",
			Help:    "Duration of model ranking calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s .. ~32s
		}),
		ItemsCollected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ccr_triage_items_collected",
			Help:    "Items collected across all regions per run.",
			Buckets: prometheus.LinearBuckets(0, 10, 11), // 0 .. 100
		}),
		ItemsDeduped: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ccr_triage_items_deduplicated",
			Help:    "Items surviving deduplication per run.",
			Buckets: prometheus.LinearBuckets(0, 5, 11), // 0 .. 50
		}),
		ItemsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ccr_triage_items_returned",
			Help:    "Ranked items returned per run.",
			Buckets: prometheus.LinearBuckets(0, 1, 6), // 0 .. 5
		}),
	}

	reg.MustRegister(
		m.TriagesTotal,
		m.TriageDuration,
		m.FallbacksTotal,
		m.RegionSearches,
		m.SearchDuration,
		m.LLMCallsTotal,
		m.LLMDuration,
		m.ItemsCollected,
		m.ItemsDeduped,
		m.ItemsReturned,
	)

	return m
}

// Hooks returns an EngineHooks that increments the corresponding metrics.
func (m *Metrics) Hooks() EngineHooks {
	return EngineHooks{
		OnSearch: func(region string, duration float64, err error) {
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			m.RegionSearches.WithLabelValues(region, outcome).Inc()
			m.SearchDuration.WithLabelValues(region).Observe(duration)
		},
		OnLLMCall: func(duration float64, err error) {
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			m.LLMCallsTotal.WithLabelValues(outcome).Inc()
			m.LLMDuration.Observe(duration)
		},
		OnFallback: func(reason FallbackReason) {
			m.FallbacksTotal.WithLabelValues(string(reason)).Inc()
		},
		OnComplete: func(stage Stage, fallbackUsed bool, duration float64, collected, deduplicated, returned int) {
			fb := "false"
			if fallbackUsed {
				fb = "true"
			}
			m.TriagesTotal.WithLabelValues(string(stage)).Inc()
			m.TriageDuration.WithLabelValues(string(stage), fb).Observe(duration)
			m.ItemsCollected.Observe(float64(collected))
			m.ItemsDeduped.Observe(float64(deduplicated))
			m.ItemsReturned.Observe(float64(returned))
		},
	}
}
