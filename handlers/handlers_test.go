package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pricescout/models"
)

type fakeFetcher struct {
	quotes  []models.PriceQuote
	queries []string
}

func (f *fakeFetcher) FetchPrices(query string) []models.PriceQuote {
	f.queries = append(f.queries, query)
	return f.quotes
}

func (f *fakeFetcher) StoreNames() []string {
	return []string{"Amazon", "Flipkart", "Croma"}
}

func postSearch(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	return rec
}

func TestSearchSuccess(t *testing.T) {
	price := 69999.0
	fetcher := &fakeFetcher{quotes: []models.PriceQuote{
		{Store: "Amazon", Title: "iPhone 15", Price: &price},
	}}
	h := NewHandlers(fetcher, nil)

	rec := postSearch(t, h, `{"productName":"iphone 15"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var result models.AggregateResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if result.Query != "iphone 15" {
		t.Errorf("product = %q, want %q", result.Query, "iphone 15")
	}
	if len(result.Quotes) != 1 || result.Quotes[0].Store != "Amazon" {
		t.Errorf("prices mangled: %+v", result.Quotes)
	}

	if len(fetcher.queries) != 1 || fetcher.queries[0] != "iphone 15" {
		t.Errorf("fetcher saw queries %v", fetcher.queries)
	}
}

func TestSearchResponseFieldNames(t *testing.T) {
	price := 999.0
	label := "₹999"
	fetcher := &fakeFetcher{quotes: []models.PriceQuote{
		{Store: "Amazon", Title: "thing", Price: &price, DisplayPrice: &label},
	}}
	h := NewHandlers(fetcher, nil)

	rec := postSearch(t, h, `{"productName":"thing"}`)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if _, ok := raw["product"]; !ok {
		t.Error("response missing 'product' field")
	}
	if _, ok := raw["prices"]; !ok {
		t.Error("response missing 'prices' field")
	}
}

func TestSearchRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing productName", `{}`},
		{"blank productName", `{"productName":"   "}`},
		{"malformed JSON", `{"productName":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			h := NewHandlers(fetcher, nil)

			rec := postSearch(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if len(fetcher.queries) != 0 {
				t.Error("fetcher must not run on a rejected request")
			}
		})
	}
}

func TestSearchTotalFailureIsRetryable(t *testing.T) {
	h := NewHandlers(&fakeFetcher{quotes: []models.PriceQuote{}}, nil)

	rec := postSearch(t, h, `{"productName":"iphone 15"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	if !strings.Contains(body["error"], "retry") {
		t.Errorf("error message should hint at retrying: %q", body["error"])
	}
}

func TestStores(t *testing.T) {
	h := NewHandlers(&fakeFetcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	rec := httptest.NewRecorder()
	h.Stores(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body["stores"]) != 3 {
		t.Errorf("stores = %v", body["stores"])
	}
}

func TestHistoryDisabled(t *testing.T) {
	h := NewHandlers(&fakeFetcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
