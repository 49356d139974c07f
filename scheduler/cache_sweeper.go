package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"

	"pricescout/cache"
)

// CacheSweeper periodically evicts expired aggregates so a quiet cache does
// not hold stale entries until the next request touches them.
type CacheSweeper struct {
	cron    *cron.Cron
	results *cache.ResultCache
}

// NewCacheSweeper creates a sweeper for the given result cache.
func NewCacheSweeper(results *cache.ResultCache) *CacheSweeper {
	return &CacheSweeper{
		cron:    cron.New(),
		results: results,
	}
}

// Start schedules the sweep every 15 minutes.
func (cs *CacheSweeper) Start() {
	_, err := cs.cron.AddFunc("@every 15m", cs.sweep)
	if err != nil {
		log.Printf("Failed to schedule cache sweeper: %v", err)
		return
	}
	cs.cron.Start()
	log.Println("Cache sweeper scheduled to run every 15 minutes")
}

// Stop stops the scheduled sweeps.
func (cs *CacheSweeper) Stop() {
	if cs.cron != nil {
		cs.cron.Stop()
	}
}

func (cs *CacheSweeper) sweep() {
	before := cs.results.Len()
	cs.results.DeleteExpired()
	after := cs.results.Len()
	if evicted := before - after; evicted > 0 {
		log.Printf("Cache sweep evicted %d expired entries, %d remain", evicted, after)
	}
}
