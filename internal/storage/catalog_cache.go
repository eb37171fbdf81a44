package storage

import (
	"database/sql"
	"errors"
	"log"
	"time"
)

// CacheStore is a short-lived payload cache keyed by resource identity.
// It implements the catalog.Cache interface: errors are logged rather than
// surfaced so the caller transparently falls back to a fresh fetch.
type CacheStore struct {
	db  *DB
	ttl time.Duration
	now func() time.Time
}

// NewCacheStore creates a cache store with the given TTL.
func NewCacheStore(db *DB, ttl time.Duration) *CacheStore {
	return &CacheStore{db: db, ttl: ttl, now: time.Now}
}

// Get returns the cached payload for a resource if it is still fresh.
// Stale or missing entries are misses.
func (c *CacheStore) Get(resource string) ([]byte, bool) {
	var payload []byte
	var fetchedAt int64
	err := c.db.conn.QueryRow(
		`SELECT payload, fetched_at FROM catalog_cache WHERE resource = ?`, resource,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		log.Printf("[CacheStore] Read failed for %s: %v", resource, err)
		return nil, false
	}

	if c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return nil, false
	}
	return payload, true
}

// Put stores a payload for a resource, replacing any previous entry.
func (c *CacheStore) Put(resource string, payload []byte) {
	_, err := c.db.conn.Exec(
		`INSERT INTO catalog_cache (resource, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(resource) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		resource, payload, c.now().Unix(),
	)
	if err != nil {
		log.Printf("[CacheStore] Write failed for %s: %v", resource, err)
	}
}

// Purge removes one resource from the cache.
func (c *CacheStore) Purge(resource string) error {
	_, err := c.db.conn.Exec(`DELETE FROM catalog_cache WHERE resource = ?`, resource)
	return err
}
