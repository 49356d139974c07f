package models

import (
	"encoding/json"
	"testing"
)

func TestUnavailableQuote(t *testing.T) {
	q := UnavailableQuote("Amazon", "iphone 15", "blocked")

	if q.Store != "Amazon" {
		t.Errorf("store = %q", q.Store)
	}
	if q.Title != "iphone 15" {
		t.Errorf("title should fall back to the query, got %q", q.Title)
	}
	if q.Price != nil {
		t.Error("unavailable quote must carry a nil price")
	}
	if q.DisplayPrice == nil || *q.DisplayPrice != UnavailableLabel {
		t.Errorf("display price = %v, want %q", q.DisplayPrice, UnavailableLabel)
	}
	if !q.Unavailable {
		t.Error("quote must be flagged unavailable")
	}
	if q.Message == nil || *q.Message != "blocked" {
		t.Errorf("message = %v", q.Message)
	}

	// Over the wire the missing price is an explicit null, not an omission.
	payload, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(raw["price"]) != "null" {
		t.Errorf("price field = %s, want null", raw["price"])
	}
}

func TestHasPrice(t *testing.T) {
	positive := 999.0
	zero := 0.0

	tests := []struct {
		name  string
		quote PriceQuote
		want  bool
	}{
		{"positive price", PriceQuote{Price: &positive}, true},
		{"nil price", PriceQuote{}, false},
		{"zero price", PriceQuote{Price: &zero}, false},
		{"unavailable with price", PriceQuote{Price: &positive, Unavailable: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quote.HasPrice(); got != tt.want {
				t.Errorf("HasPrice = %v, want %v", got, tt.want)
			}
		})
	}
}
