// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougstake/dougstake/clock"
	"github.com/dougstake/dougstake/reverts"
	"github.com/dougstake/dougstake/stake"
)

type TestFunc func(t *testing.T)

type TestSequence struct {
	staker *Staker
	clock  *clock.Manual

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(staker *Staker, clk *clock.Manual) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), staker: staker, clock: clk}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) At(now int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.clock.Set(now)
	})
}

func (st *TestSequence) Stake(owner stake.Address, amount, duration uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		mint := stake.Address{}
		if m := st.staker.Config().TokenMint; m != nil {
			mint = *m
		}
		if err := st.staker.Stake(owner, mint, amount, duration); err != nil {
			t.Fatalf("failed to stake for %s: %v", owner.AbbrevString(), err)
		}
	})
}

func (st *TestSequence) TopUp(owner stake.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.staker.TopUp(owner, *st.staker.Config().TokenMint, amount); err != nil {
			t.Fatalf("failed to top up for %s: %v", owner.AbbrevString(), err)
		}
	})
}

func (st *TestSequence) Extend(owner stake.Address, additional uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.staker.Extend(owner, additional); err != nil {
			t.Fatalf("failed to extend for %s: %v", owner.AbbrevString(), err)
		}
	})
}

func (st *TestSequence) Restake(owner stake.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.staker.Restake(owner); err != nil {
			t.Fatalf("failed to restake for %s: %v", owner.AbbrevString(), err)
		}
	})
}

func (st *TestSequence) Unstake(owner stake.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.staker.Unstake(owner); err != nil {
			t.Fatalf("failed to unstake for %s: %v", owner.AbbrevString(), err)
		}
	})
}

// Rejects runs f and expects it to fail with the given revert.
func (st *TestSequence) Rejects(expected *reverts.ErrRevert, f func(s *Staker) error) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		err := f(st.staker)
		require.Error(t, err)
		assert.ErrorIs(t, err, expected)
	})
}

func (st *TestSequence) Vault(total, lifetime uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		info, err := st.staker.VaultInfo()
		require.NoError(t, err)
		assert.Equal(t, total, info.TotalValueLocked, "total value locked")
		assert.Equal(t, lifetime, info.LifetimeValueLocked, "lifetime value locked")
	})
}

func (st *TestSequence) Assert(a *RecordAssertions) *TestSequence {
	return st.AddFunc(a.Run)
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
	report, err := st.staker.Audit()
	require.NoError(t, err, "audit after sequence")
	t.Logf("sequence done, %d records, %d active", report.Records, report.Active)
}

type RecordAssertions struct {
	staker *Staker
	owner  stake.Address

	staked       *bool
	amount       *uint64
	rewards      *uint64
	duration     *uint64
	unlockableAt *int64
}

func AssertRecord(staker *Staker, owner stake.Address) *RecordAssertions {
	return &RecordAssertions{staker: staker, owner: owner}
}

func (ra *RecordAssertions) Staked(expected bool) *RecordAssertions {
	ra.staked = &expected
	return ra
}

func (ra *RecordAssertions) Amount(expected uint64) *RecordAssertions {
	ra.amount = &expected
	return ra
}

func (ra *RecordAssertions) Rewards(expected uint64) *RecordAssertions {
	ra.rewards = &expected
	return ra
}

func (ra *RecordAssertions) Duration(expected uint64) *RecordAssertions {
	ra.duration = &expected
	return ra
}

func (ra *RecordAssertions) UnlockableAt(expected int64) *RecordAssertions {
	ra.unlockableAt = &expected
	return ra
}

func (ra *RecordAssertions) Run(t *testing.T) {
	rec, err := ra.staker.Get(ra.owner)
	require.NoError(t, err)

	if ra.staked != nil {
		assert.Equal(t, *ra.staked, rec.IsStaked, "record %s staked", ra.owner.AbbrevString())
	}
	if ra.amount != nil {
		assert.Equal(t, *ra.amount, rec.Amount, "record %s amount", ra.owner.AbbrevString())
	}
	if ra.rewards != nil {
		assert.Equal(t, *ra.rewards, rec.Rewards, "record %s rewards", ra.owner.AbbrevString())
	}
	if ra.duration != nil {
		assert.Equal(t, *ra.duration, rec.Duration, "record %s duration", ra.owner.AbbrevString())
	}
	if ra.unlockableAt != nil {
		assert.Equal(t, *ra.unlockableAt, rec.UnlockableAt, "record %s unlockableAt", ra.owner.AbbrevString())
	}
}
