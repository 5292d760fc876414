// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket is a key prefix that carves a logical table out of a store.
// Records and vault counters live in separate buckets of the same store.
type Bucket string

// key returns the prefixed key in a fresh slice.
func (b Bucket) key(k []byte) []byte {
	pk := make([]byte, 0, len(b)+len(k))
	return append(append(pk, b...), k...)
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{
		bucketGetter: bucketGetter{b, src},
		bucketPutter: bucketPutter{b, src},
		src:          src,
	}
}

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.b.key(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.b.key(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	b   Bucket
	src Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.b.key(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.b.key(key)) }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) Snapshot() Snapshot {
	snapshot := s.src.Snapshot()
	return &struct {
		Getter
		ReleaseFunc
	}{
		s.bucketGetter.b.NewGetter(snapshot),
		snapshot.Release,
	}
}

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &struct {
		Putter
		LenFunc
		WriteFunc
	}{
		s.bucketPutter.b.NewPutter(bulk),
		bulk.Len,
		bulk.Write,
	}
}

// Iterate walks the bucket. Range bounds are relative to the bucket and the
// keys returned have the prefix stripped.
func (s *bucketStore) Iterate(r Range) Iterator {
	b := s.bucketGetter.b
	r.Start = b.key(r.Start)
	if len(r.Limit) == 0 {
		r.Limit = util.BytesPrefix([]byte(b)).Limit
	} else {
		r.Limit = b.key(r.Limit)
	}
	return &bucketIterator{s.src.Iterate(r), len(b)}
}

type bucketIterator struct {
	Iterator
	prefixLen int
}

func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
