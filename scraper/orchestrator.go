package scraper

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"pricescout/cache"
	"pricescout/models"
)

// SessionFactory supplies browser sessions to the orchestrator. Release must
// tolerate being handed a session in any state.
type SessionFactory interface {
	Acquire() (*BrowserSession, error)
	Release(session *BrowserSession)
}

// Orchestrator runs every store extractor against one shared browser session
// per fetch cycle and owns the result cache. FetchPrices never fails: total
// failure yields an empty slice, which the HTTP layer maps to a retryable
// server error.
type Orchestrator struct {
	sessions   SessionFactory
	extractors []StoreExtractor
	results    *cache.ResultCache
	timeout    time.Duration
	group      singleflight.Group
}

// NewOrchestrator wires the session factory, the store extractors (in
// response order) and the result cache.
func NewOrchestrator(sessions SessionFactory, extractors []StoreExtractor, results *cache.ResultCache, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		sessions:   sessions,
		extractors: extractors,
		results:    results,
		timeout:    timeout,
	}
}

// StoreNames returns the configured store identifiers in response order.
func (o *Orchestrator) StoreNames() []string {
	names := make([]string, len(o.extractors))
	for i, extractor := range o.extractors {
		names[i] = extractor.Store()
	}
	return names
}

// FetchPrices returns one quote per configured store for the query, served
// from cache when fresh. Concurrent requests for the same uncached key share
// a single scrape. The cache key is the literal query string; callers that
// want case-folding do it before calling.
func (o *Orchestrator) FetchPrices(query string) []models.PriceQuote {
	if cached, ok := o.results.Get(query); ok {
		log.Printf("Serving cached prices for query: %q", query)
		return cached.Quotes
	}

	value, _, _ := o.group.Do(query, func() (interface{}, error) {
		// A coalesced waiter may arrive after the winner cached the result.
		if cached, ok := o.results.Get(query); ok {
			return cached.Quotes, nil
		}
		return o.fetchLive(query), nil
	})

	quotes, _ := value.([]models.PriceQuote)
	return quotes
}

// fetchLive performs one full scrape cycle: one browser session, one page
// per store, all stores in parallel under a single deadline.
func (o *Orchestrator) fetchLive(query string) []models.PriceQuote {
	started := time.Now()
	session, err := o.sessions.Acquire()
	if err != nil {
		log.Printf("Browser session launch failed for query %q: %v", query, err)
		return []models.PriceQuote{}
	}
	defer o.sessions.Release(session)

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	quotes := make([]models.PriceQuote, len(o.extractors))
	var wg sync.WaitGroup
	for i, extractor := range o.extractors {
		wg.Add(1)
		go func(i int, extractor StoreExtractor) {
			defer wg.Done()
			quotes[i] = extractor.Fetch(ctx, session, query)
		}(i, extractor)
	}
	wg.Wait()

	log.Printf("Fetched %d quotes for query %q in %v", len(quotes), query, time.Since(started))

	if len(quotes) > 0 {
		o.results.Set(query, &models.AggregateResult{Query: query, Quotes: quotes})
	}
	return quotes
}
