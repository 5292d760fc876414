// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"

	"github.com/dougstake/dougstake/stake"
)

// ownerLocks serializes actions and record reads per owner. Entries are
// dropped once nobody holds or waits on them.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[stake.Address]*ownerLock
}

type ownerLock struct {
	sync.Mutex
	refs int
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[stake.Address]*ownerLock)}
}

// lock blocks until owner is free and returns the matching unlock.
func (l *ownerLocks) lock(owner stake.Address) func() {
	l.mu.Lock()
	entry, ok := l.locks[owner]
	if !ok {
		entry = &ownerLock{}
		l.locks[owner] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, owner)
		}
		l.mu.Unlock()
	}
}

func (l *ownerLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
