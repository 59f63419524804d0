package newsapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// maxQuoteSymbols bounds one prices request; the dashboard shows a
// fixed widget set well under this.
const maxQuoteSymbols = 20

func (a *API) handleQuotes(w http.ResponseWriter, r *http.Request) {
	if a.quotes == nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("symbols"))
	if raw == "" {
		http.Error(w, `{"error":"missing query parameter symbols"}`, http.StatusBadRequest)
		return
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, strings.ToUpper(s))
		}
	}
	if len(symbols) == 0 || len(symbols) > maxQuoteSymbols {
		http.Error(w, `{"error":"invalid symbols parameter"}`, http.StatusBadRequest)
		return
	}

	quotes, err := a.quotes.Quotes(r.Context(), symbols)
	if err != nil {
		a.logger.Error(r.Context(), err, "quote fetch failed", "symbols", raw)
		a.writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "price data unavailable",
		})
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"quotes": quotes})
}

func (a *API) handleForecast(w http.ResponseWriter, r *http.Request) {
	if a.forecast == nil {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}

	symbol := strings.TrimSpace(chi.URLParam(r, "symbol"))
	if symbol == "" {
		http.Error(w, `{"error":"missing symbol"}`, http.StatusBadRequest)
		return
	}

	outlook, err := a.forecast.Get(r.Context(), symbol)
	if err != nil {
		a.logger.Error(r.Context(), err, "forecast failed", "symbol", symbol)
		a.writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "forecast unavailable",
		})
		return
	}
	a.writeJSON(w, http.StatusOK, outlook)
}
