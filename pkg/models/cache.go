package models

import "time"

// CacheEntry is a stored response keyed by a prompt content hash.
type CacheEntry struct {
	Key      string    `json:"key"`
	Payload  string    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}

// CacheStats reports response-cache performance counters.
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
