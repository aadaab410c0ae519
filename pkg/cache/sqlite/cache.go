package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/folio-site/folio/pkg/models"
)

// Cache is the durable response cache backed by SQLite. Entries are keyed by
// a content hash of the full rendered prompt and expire passively: a stale
// row is treated as a miss but left in place until Clear is called.
type Cache struct {
	db     *sql.DB
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

const createCacheTable = `
CREATE TABLE IF NOT EXISTS response_cache (
	key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	stored_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// New creates a Cache with the given database path and expiry window.
func New(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	if _, err := db.Exec(createCacheTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// HashPrompt computes the cache key for a system instruction and user query.
func HashPrompt(instruction, userQuery string) string {
	h := sha256.New()
	h.Write([]byte(instruction))
	h.Write([]byte(userQuery))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get retrieves a cached reply. Returns false if absent or older than the
// expiry window.
func (c *Cache) Get(key string) (string, bool) {
	var payload string
	var storedAt time.Time

	err := c.db.QueryRow(
		`SELECT payload, stored_at FROM response_cache WHERE key = ?`,
		key,
	).Scan(&payload, &storedAt)

	if err != nil {
		c.misses.Add(1)
		return "", false
	}

	if time.Since(storedAt) >= c.ttl {
		c.misses.Add(1)
		return "", false
	}

	c.hits.Add(1)
	return payload, true
}

// Put stores a reply, overwriting payload and timestamp if the key exists.
func (c *Cache) Put(key, payload string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO response_cache (key, payload, stored_at) VALUES (?, ?, ?)`,
		key, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Stats returns cache performance metrics.
func (c *Cache) Stats() (models.CacheStats, error) {
	var count int64
	err := c.db.QueryRow(`SELECT COUNT(*) FROM response_cache`).Scan(&count)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries: count,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}, nil
}

// Clear removes cache entries. If expiredOnly is true, only entries past the
// expiry window are removed.
func (c *Cache) Clear(expiredOnly bool) error {
	var query string
	var args []any
	if expiredOnly {
		query = `DELETE FROM response_cache WHERE (julianday('now') - julianday(stored_at)) * 86400 > ?`
		args = append(args, c.ttl.Seconds())
	} else {
		query = `DELETE FROM response_cache`
	}
	_, err := c.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
