package newsapi

import (
	"errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tkhongsap/commodity-currency-research/internal/news"
)

func (a *API) handleTriage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		http.Error(w, `{"error":"missing query parameter q"}`, http.StatusBadRequest)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("ccr.news.query", query))

	result, err := a.triage.Triage(r.Context(), query)
	if err != nil {
		if errors.Is(err, news.ErrTimedOut) {
			a.logger.Warn(r.Context(), "triage timed out", "query", query)
			a.writeJSON(w, http.StatusGatewayTimeout, map[string]string{
				"error": "news analysis timed out, please retry",
			})
			return
		}
		a.logger.Error(r.Context(), err, "triage failed", "query", query)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span.SetAttributes(
		attribute.Bool("ccr.news.fallback", result.FallbackUsed),
		attribute.Int("ccr.news.items", len(result.Items)),
	)

	if result.Items == nil {
		result.Items = []news.RankedNewsItem{}
	}
	a.writeJSON(w, http.StatusOK, result)
}
