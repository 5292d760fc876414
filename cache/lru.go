// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU a LRU cache extends golang-lru with load-through and hit statistics.
type LRU struct {
	*lru.Cache
	stats Stats
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU(maxSize int) (*LRU, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{Cache: cache}, nil
}

// Loader defines loader to load value.
type Loader func(key any) (any, error)

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU) GetOrLoad(key any, loader Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		l.stats.hit.Add(1)
		return v, nil
	}
	l.stats.miss.Add(1)
	v, err := loader(key)
	if err != nil {
		return nil, err
	}

	l.Add(key, v)
	return v, nil
}

// Stats returns the load-through statistics.
func (l *LRU) Stats() *Stats {
	return &l.stats
}

// Stats collects cache hit/miss.
type Stats struct {
	hit, miss atomic.Int64
}

// Hits returns the number of lookups served from the cache.
func (s *Stats) Hits() int64 { return s.hit.Load() }

// Misses returns the number of lookups that went to the loader.
func (s *Stats) Misses() int64 { return s.miss.Load() }

// HitRate returns hits over lookups, 0 before any lookup.
func (s *Stats) HitRate() float64 {
	hit, miss := s.hit.Load(), s.miss.Load()
	if hit+miss == 0 {
		return 0
	}
	return float64(hit) / float64(hit+miss)
}
