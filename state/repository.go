// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/cache"
	"github.com/dougstake/dougstake/kv"
	"github.com/dougstake/dougstake/record"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/vaultinfo"
)

const (
	recordStoreName = "r"
	metaStoreName   = "m"
)

var vaultInfoKey = []byte("vault-info")

// Repository reads records and vault counters, and hands out stages for
// writing them.
type Repository struct {
	store   kv.Store
	records kv.Store
	meta    kv.Store
	cache   *cache.LRU
}

// New creates a repository on top of store. cacheSize bounds the number of
// cached records.
func New(store kv.Store, cacheSize int) (*Repository, error) {
	c, err := cache.NewLRU(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "record cache")
	}
	return &Repository{
		store:   store,
		records: kv.Bucket(recordStoreName).NewStore(store),
		meta:    kv.Bucket(metaStoreName).NewStore(store),
		cache:   c,
	}, nil
}

// CacheStats returns the record cache statistics.
func (r *Repository) CacheStats() *cache.Stats {
	return r.cache.Stats()
}

// Record returns a copy of the owner's record. A zero record is returned if
// the owner never staked. A miss fills the cache with the loaded row, so calls
// must be serialized with stage commits of the same owner.
func (r *Repository) Record(owner stake.Address) (*record.Record, error) {
	v, err := r.cache.GetOrLoad(owner, func(any) (any, error) {
		return r.loadRecord(owner)
	})
	if err != nil {
		return nil, err
	}
	return v.(*record.Record).Copy(), nil
}

func (r *Repository) loadRecord(owner stake.Address) (*record.Record, error) {
	data, err := r.records.Get(owner.Bytes())
	if err != nil {
		if r.records.IsNotFound(err) {
			return &record.Record{}, nil
		}
		return nil, errors.Wrap(err, "get record")
	}
	return decodeRecord(data)
}

// VaultInfo returns the vault counters. A zero, uninitialized value is
// returned before initialization.
func (r *Repository) VaultInfo() (*vaultinfo.Info, error) {
	data, err := r.meta.Get(vaultInfoKey)
	if err != nil {
		if r.meta.IsNotFound(err) {
			return &vaultinfo.Info{}, nil
		}
		return nil, errors.Wrap(err, "get vault info")
	}
	return decodeVaultInfo(data)
}

// ForEachRecord calls fn for every stored record in key order. Iteration
// stops at the first error returned by fn.
func (r *Repository) ForEachRecord(fn func(owner stake.Address, rec *record.Record) error) error {
	iter := r.records.Iterate(kv.Range{})
	defer iter.Release()

	for iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if err := fn(stake.BytesToAddress(iter.Key()), rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Stage starts a set of writes applied together by Commit.
func (r *Repository) Stage() *Stage {
	return &Stage{
		repo:    r,
		bulk:    r.store.Bulk(),
		records: make(map[stake.Address]*record.Record),
	}
}
