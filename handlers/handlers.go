package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"pricescout/models"
	"pricescout/repository"
)

// PriceFetcher is the orchestrator surface the HTTP layer depends on. It
// never errors: an empty quote slice signals total failure.
type PriceFetcher interface {
	FetchPrices(query string) []models.PriceQuote
	StoreNames() []string
}

// Handlers carries the HTTP endpoints and their dependencies. The search
// repository is nil when persistence is disabled.
type Handlers struct {
	fetcher  PriceFetcher
	searches *repository.SearchRepository
}

// NewHandlers wires the price fetcher and the optional search repository.
func NewHandlers(fetcher PriceFetcher, searches *repository.SearchRepository) *Handlers {
	return &Handlers{fetcher: fetcher, searches: searches}
}

// Search handles POST /search: fetch live prices for a product name.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ProductName) == "" {
		writeError(w, http.StatusBadRequest, "productName required")
		return
	}

	quotes := h.fetcher.FetchPrices(req.ProductName)
	if len(quotes) == 0 {
		writeError(w, http.StatusBadGateway, "Unable to fetch live prices right now. Please retry.")
		return
	}

	if h.searches != nil {
		go func(query string, quotes []models.PriceQuote) {
			if err := h.searches.SaveSearch(query, quotes); err != nil {
				log.Printf("Failed to save search history: %v", err)
			}
		}(req.ProductName, quotes)
	}

	writeJSON(w, http.StatusOK, models.AggregateResult{
		Query:  req.ProductName,
		Quotes: quotes,
	})
}

// Stores handles GET /api/v1/stores: the configured store identifiers.
func (h *Handlers) Stores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stores": h.fetcher.StoreNames(),
	})
}

// History handles GET /api/v1/history: recent persisted searches. Answers
// 503 while persistence is disabled.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	if h.searches == nil {
		writeError(w, http.StatusServiceUnavailable, "Search history persistence is disabled")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.searches.RecentSearches(limit)
	if err != nil {
		log.Printf("Failed to load search history: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load search history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"searches": records})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
