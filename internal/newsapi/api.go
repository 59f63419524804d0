// Package newsapi exposes the research backend over HTTP: news triage,
// price quotes, forecasts, and triage run history.
package newsapi

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/tkhongsap/commodity-currency-research/internal/forecast"
	"github.com/tkhongsap/commodity-currency-research/internal/history"
	"github.com/tkhongsap/commodity-currency-research/internal/news"
	"github.com/tkhongsap/commodity-currency-research/internal/prices"
)

// TriageService defines the news operations the API needs.
type TriageService interface {
	Triage(ctx context.Context, input string) (*news.TriageResult, error)
}

// ForecastService defines the forecast operations the API needs.
type ForecastService interface {
	Get(ctx context.Context, symbol string) (*forecast.Outlook, error)
}

// API holds dependencies for HTTP handlers. Prices, forecast, and
// history are optional; their routes 404 via nil-checks when the
// backing service is not configured.
type API struct {
	logger   log.Logger
	triage   TriageService
	quotes   prices.Client
	forecast ForecastService
	runs     history.Store
}

// New creates the API handler. The triage service is required.
func New(logger log.Logger, triage TriageService, quotes prices.Client, fc ForecastService, runs history.Store) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if triage == nil {
		panic(xerrors.New("triage service is required"))
	}
	return &API{
		logger:   logger,
		triage:   triage,
		quotes:   quotes,
		forecast: fc,
		runs:     runs,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/news", a.handleTriage)
		r.Get("/prices", a.handleQuotes)
		r.Get("/forecast/{symbol}", a.handleForecast)
		r.Get("/history", a.handleHistory)
		r.Get("/history/{id}", a.handleHistoryByID)
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	runs, err := a.runs.Recent(r.Context(), 20)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list triage history")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (a *API) handleHistoryByID(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("ccr.triage.id", id))

	run, ok, err := a.runs.Get(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to get triage run", "id", id)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	a.writeJSON(w, http.StatusOK, run)
}
