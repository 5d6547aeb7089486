package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a bounded in-process TTL map. Expired entries are dropped
// lazily on read and in bulk by Sweep.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (cache *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	entry, ok := cache.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !cache.now().Before(entry.expiresAt) {
		delete(cache.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (cache *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	now := cache.now()
	if _, exists := cache.entries[key]; !exists && cache.maxEntries > 0 && len(cache.entries) >= cache.maxEntries {
		cache.sweepLocked(now)
		if len(cache.entries) >= cache.maxEntries {
			cache.evictSoonestLocked()
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	cache.entries[key] = memoryEntry{value: stored, expiresAt: now.Add(cache.ttl)}
	return nil
}

func (cache *MemoryCache) InvalidatePrefix(_ context.Context, prefix string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	for key := range cache.entries {
		if strings.HasPrefix(key, prefix) {
			delete(cache.entries, key)
		}
	}
	return nil
}

func (cache *MemoryCache) Close() error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries = make(map[string]memoryEntry)
	return nil
}

// Sweep removes every expired entry and returns how many were dropped.
func (cache *MemoryCache) Sweep() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	return cache.sweepLocked(cache.now())
}

func (cache *MemoryCache) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	return len(cache.entries)
}

func (cache *MemoryCache) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range cache.entries {
		if !now.Before(entry.expiresAt) {
			delete(cache.entries, key)
			removed++
		}
	}
	return removed
}

func (cache *MemoryCache) evictSoonestLocked() {
	victim := ""
	var victimExpiry time.Time
	for key, entry := range cache.entries {
		if victim == "" || entry.expiresAt.Before(victimExpiry) {
			victim = key
			victimExpiry = entry.expiresAt
		}
	}
	if victim != "" {
		delete(cache.entries, victim)
	}
}
