package cache

import (
	"testing"
	"time"

	"pricescout/models"
)

func sampleAggregate(query string) *models.AggregateResult {
	price := 69999.0
	return &models.AggregateResult{
		Query: query,
		Quotes: []models.PriceQuote{
			{Store: "Amazon", Title: query, Price: &price},
		},
	}
}

func TestResultCacheSetGet(t *testing.T) {
	rc, err := NewResultCache(time.Hour)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	rc.Set("iphone 15", sampleAggregate("iphone 15"))

	got, ok := rc.Get("iphone 15")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Query != "iphone 15" || len(got.Quotes) != 1 {
		t.Errorf("cached aggregate mangled: %+v", got)
	}

	if _, ok := rc.Get("iPhone 15"); ok {
		t.Error("keys are literal, case variant must miss")
	}
	if _, ok := rc.Get("missing"); ok {
		t.Error("unknown key must miss")
	}
}

func TestResultCacheExpiry(t *testing.T) {
	rc, err := NewResultCache(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	rc.Set("iphone 15", sampleAggregate("iphone 15"))
	if _, ok := rc.Get("iphone 15"); !ok {
		t.Fatal("fresh entry must hit")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := rc.Get("iphone 15"); ok {
		t.Error("expired entry must miss")
	}

	rc.DeleteExpired()
	if rc.Len() != 0 {
		t.Errorf("cache still holds %d entries after sweep", rc.Len())
	}
}

func TestResultCacheRefusesEmptyAggregate(t *testing.T) {
	rc, err := NewResultCache(time.Hour)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	rc.Set("bad", nil)
	rc.Set("empty", &models.AggregateResult{Query: "empty"})

	if _, ok := rc.Get("bad"); ok {
		t.Error("nil aggregate must not be cached")
	}
	if _, ok := rc.Get("empty"); ok {
		t.Error("zero-quote aggregate must not be cached")
	}
	if rc.Len() != 0 {
		t.Errorf("cache should be empty, holds %d", rc.Len())
	}
}
