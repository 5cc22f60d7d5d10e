// Package cache provides an explicit keyed TTL store for analysis reports.
// Callers that want dashboard-style caching pass the store around; there is
// no ambient global state.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/loansentry/internal/engine"
)

// entry holds one serialized report with its expiry stamp
type entry struct {
	payload   []byte
	expiresAt time.Time
}

// SnapshotStore is an in-memory TTL cache for analysis reports. Values are
// msgpack-encoded on Put and decoded on Get, so cached snapshots stay
// isolated from caller mutation.
type SnapshotStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	log     zerolog.Logger
	now     func() time.Time
}

// NewSnapshotStore creates an empty store
func NewSnapshotStore(log zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		entries: make(map[string]entry),
		log:     log.With().Str("module", "snapshot_cache").Logger(),
		now:     time.Now,
	}
}

// Put stores a report under key for the given TTL
func (s *SnapshotStore) Put(key string, report engine.Report, ttl time.Duration) error {
	payload, err := msgpack.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %q: %w", key, err)
	}

	s.mu.Lock()
	s.entries[key] = entry{payload: payload, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()

	s.log.Debug().Str("key", key).Dur("ttl", ttl).Int("bytes", len(payload)).Msg("Snapshot stored")
	return nil
}

// Get returns the report stored under key, or false when the key is absent
// or its TTL has elapsed.
func (s *SnapshotStore) Get(key string) (engine.Report, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return engine.Report{}, false
	}

	var report engine.Report
	if err := msgpack.Unmarshal(e.payload, &report); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Failed to decode cached snapshot")
		return engine.Report{}, false
	}
	return report, true
}

// PurgeExpired removes all entries past their TTL and returns how many were
// dropped. Expired entries are also invisible to Get, so purging is only
// about reclaiming memory.
func (s *SnapshotStore) PurgeExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}

	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("Purged expired snapshots")
	}
	return removed
}

// Len returns the number of stored entries, expired ones included
func (s *SnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
