package cache

import (
	"log"
	"time"

	gocache "github.com/go-pkgz/expirable-cache"

	"pricescout/models"
)

// ResultCache memoizes aggregate results per query for a fixed TTL. Keys are
// the literal query string with no normalization, so "iPhone 15" and
// "iphone 15" are distinct entries.
// Construct once per process; entries self-expire, no teardown needed.
type ResultCache struct {
	store gocache.Cache
	ttl   time.Duration
}

// NewResultCache creates a cache whose entries all expire ttl after write.
func NewResultCache(ttl time.Duration) (*ResultCache, error) {
	store, err := gocache.NewCache(gocache.TTL(ttl))
	if err != nil {
		return nil, err
	}
	return &ResultCache{store: store, ttl: ttl}, nil
}

// Get returns the cached aggregate for the key if present and not expired.
func (rc *ResultCache) Get(key string) (*models.AggregateResult, bool) {
	value, ok := rc.store.Get(key)
	if !ok {
		return nil, false
	}
	result, ok := value.(*models.AggregateResult)
	return result, ok
}

// Set stores the aggregate, resetting its TTL. Aggregates with zero quotes
// are never cached: a total scrape failure must stay retryable on the next
// request instead of being served as a cached negative for an hour.
func (rc *ResultCache) Set(key string, result *models.AggregateResult) {
	if result == nil || len(result.Quotes) == 0 {
		log.Printf("Refusing to cache empty aggregate for query: %q", key)
		return
	}
	rc.store.Set(key, result, rc.ttl)
}

// DeleteExpired drops entries past their expiry. The cron sweeper calls this
// so stale aggregates do not pile up between requests.
func (rc *ResultCache) DeleteExpired() {
	rc.store.DeleteExpired()
}

// Len returns the number of live entries.
func (rc *ResultCache) Len() int {
	return rc.store.Len()
}
