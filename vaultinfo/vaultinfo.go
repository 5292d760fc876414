// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaultinfo

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/delta"
	"github.com/dougstake/dougstake/reverts"
)

// Info holds the contract-wide staking totals.
type Info struct {
	TotalValueLocked    uint64
	LifetimeValueLocked uint64
	IsInitialized       bool
}

// Initialize sets the one-shot flag and zeroes the counters.
func (i *Info) Initialize() error {
	if i.IsInitialized {
		return reverts.ErrAlreadyInitialized
	}
	i.TotalValueLocked = 0
	i.LifetimeValueLocked = 0
	i.IsInitialized = true
	return nil
}

// Apply adjusts the totals by d. On error the info is left untouched.
func (i *Info) Apply(d *delta.Delta) error {
	if d.IsEmpty() {
		return nil
	}
	locked, carry := bits.Add64(i.TotalValueLocked, d.LockedIncrease, 0)
	if carry != 0 {
		return reverts.ErrOverflow
	}
	lifetime, carry := bits.Add64(i.LifetimeValueLocked, d.Inflow, 0)
	if carry != 0 {
		return reverts.ErrOverflow
	}
	if d.LockedDecrease > locked {
		return errors.Errorf("locked total underflow: %d < %d", locked, d.LockedDecrease)
	}
	i.TotalValueLocked = locked - d.LockedDecrease
	i.LifetimeValueLocked = lifetime
	return nil
}

// Check verifies the totals against the sum of active principal.
func (i *Info) Check(activeSum uint64) error {
	if i.TotalValueLocked != activeSum {
		return errors.Errorf("total value locked %d does not match active principal %d", i.TotalValueLocked, activeSum)
	}
	if i.LifetimeValueLocked < i.TotalValueLocked {
		return errors.Errorf("lifetime value locked %d below total value locked %d", i.LifetimeValueLocked, i.TotalValueLocked)
	}
	return nil
}
