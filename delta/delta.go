// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delta

// Delta is the effect of one record transition on the aggregate counters.
type Delta struct {
	LockedIncrease uint64 // principal entering the locked total
	LockedDecrease uint64 // principal leaving the locked total
	Inflow         uint64 // new principal from outside, counted towards lifetime value
}

// IsEmpty returns whether applying the delta is a no-op.
func (d *Delta) IsEmpty() bool {
	return d == nil || (d.LockedIncrease == 0 && d.LockedDecrease == 0 && d.Inflow == 0)
}

// Deposit is the delta of principal arriving from the owner's account.
func Deposit(amount uint64) *Delta {
	return &Delta{LockedIncrease: amount, Inflow: amount}
}

// Compound is the delta of reward rolled into principal.
func Compound(rewards uint64) *Delta {
	return &Delta{LockedIncrease: rewards}
}

// Withdrawal is the delta of principal leaving the system.
func Withdrawal(amount uint64) *Delta {
	return &Delta{LockedDecrease: amount}
}
