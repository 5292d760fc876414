// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock supplies wall-clock seconds to the staking ledger.
package clock

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrUnavailable is returned when the host cannot supply a usable time.
var ErrUnavailable = errors.New("clock unavailable")

// Clock returns the current wall-clock time in unix seconds.
type Clock interface {
	Now() (int64, error)
}

// System reads the host clock.
type System struct{}

func (System) Now() (int64, error) {
	now := time.Now().Unix()
	if now <= 0 {
		return 0, ErrUnavailable
	}
	return now, nil
}

// Manual is a settable clock for tests and simulations.
type Manual struct {
	mu  sync.Mutex
	now int64
	err error
}

// NewManual creates a manual clock starting at now.
func NewManual(now int64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return 0, m.err
	}
	return m.now, nil
}

// Set moves the clock to now.
func (m *Manual) Set(now int64) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Advance moves the clock forward by secs.
func (m *Manual) Advance(secs int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now += secs
	return m.now
}

// Fail makes subsequent reads return err until it is cleared with nil.
func (m *Manual) Fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}
