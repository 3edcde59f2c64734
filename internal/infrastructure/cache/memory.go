// Package cache holds the latest mapping run in memory so the results API
// does not hit the store on every request.
package cache

import (
	"sync"
	"time"

	"github.com/bevmap/backend/internal/domain"
)

// ResultCache is a thread-safe single-slot cache for a resolution run's
// records, with TTL expiry.
type ResultCache struct {
	mutex      sync.RWMutex
	records    []domain.MappingRecord
	expiration time.Time
	ttl        time.Duration
}

// NewResultCache creates a result cache with the given TTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{ttl: ttl}
}

// Get returns the cached records, or false when empty or expired.
func (c *ResultCache) Get() ([]domain.MappingRecord, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.records == nil || time.Now().After(c.expiration) {
		return nil, false
	}
	return c.records, true
}

// Set stores records, replacing any previous run.
func (c *ResultCache) Set(records []domain.MappingRecord) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.records = records
	c.expiration = time.Now().Add(c.ttl)
}

// Invalidate drops the cached run.
func (c *ResultCache) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.records = nil
}
