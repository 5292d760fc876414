// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougstake/dougstake/delta"
	"github.com/dougstake/dougstake/reverts"
	"github.com/dougstake/dougstake/stake"
)

const day = int64(86400)

var (
	owner = stake.BytesToAddress([]byte("owner"))
	vault = stake.BytesToAddress([]byte("vault"))
	mint  = stake.BytesToAddress([]byte("doug"))
	other = stake.BytesToAddress([]byte("fake"))
)

func classicRules() *Rules {
	return NewRules(stake.ClassicConfig())
}

func pinnedRules() *Rules {
	cfg := stake.PinnedConfig(mint)
	cfg.APRFactor = 3.0
	return NewRules(cfg)
}

func staked(t *testing.T, rules *Rules, amount, duration uint64, now int64) *Record {
	r := &Record{}
	_, err := r.Stake(rules, owner, mint, amount, duration, vault, 254, now)
	require.NoError(t, err)
	return r
}

func TestStake(t *testing.T) {
	r := &Record{}
	assert.True(t, r.IsEmpty())

	d, err := r.Stake(classicRules(), owner, stake.Address{}, 100_000_000, 365, vault, 254, 0)
	require.NoError(t, err)
	assert.Equal(t, delta.Deposit(100_000_000), d)

	assert.Equal(t, &Record{
		Owner:        owner,
		Amount:       100_000_000,
		Rewards:      300_000_000,
		Duration:     365,
		Vault:        vault,
		VaultBump:    254,
		UnlockableAt: 31_536_000,
		IsStaked:     true,
	}, r)
	assert.NoError(t, r.Validate())
	assert.False(t, r.IsEmpty())
}

func TestStakeMinDuration(t *testing.T) {
	r := staked(t, classicRules(), 100_000_000, 14, 0)
	assert.Equal(t, uint64(11_506_850), r.Rewards)
	assert.Equal(t, 14*day, r.UnlockableAt)
}

func TestStakePreconditions(t *testing.T) {
	tests := []struct {
		name     string
		rules    *Rules
		record   *Record
		mint     stake.Address
		amount   uint64
		duration uint64
		want     error
	}{
		{"already staked", classicRules(), &Record{IsStaked: true, Amount: 1}, mint, 100_000_000, 30, reverts.ErrAlreadyStaked},
		{"amount too small", classicRules(), &Record{}, mint, stake.StakeMinimum - 1, 30, reverts.ErrAmountNotEnough},
		{"already staked before amount", classicRules(), &Record{IsStaked: true}, mint, 1, 30, reverts.ErrAlreadyStaked},
		{"duration too short", classicRules(), &Record{}, mint, 100_000_000, 13, reverts.ErrDurationTooShort},
		{"duration too long", classicRules(), &Record{}, mint, 100_000_000, 366, reverts.ErrDurationTooLong},
		{"amount before duration", classicRules(), &Record{}, mint, 1, 1, reverts.ErrAmountNotEnough},
		{"wrong mint", pinnedRules(), &Record{}, other, 100_000_000, 30, reverts.ErrInvalidMint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.record
			d, err := tt.record.Stake(tt.rules, owner, tt.mint, tt.amount, tt.duration, vault, 1, 100)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, d)
			assert.Equal(t, before, *tt.record)
		})
	}
}

func TestStakeMintPinned(t *testing.T) {
	r := &Record{}
	_, err := r.Stake(pinnedRules(), owner, mint, 100_000_000, 30, vault, 1, 0)
	assert.NoError(t, err)

	// without pinning any mint is accepted
	r = &Record{}
	_, err = r.Stake(classicRules(), owner, other, 100_000_000, 30, vault, 1, 0)
	assert.NoError(t, err)
}

func TestUnstake(t *testing.T) {
	r := staked(t, classicRules(), 100_000_000, 365, 0)

	_, err := r.Unstake(31_535_999)
	assert.ErrorIs(t, err, reverts.ErrLocked)
	assert.True(t, r.IsStaked)

	d, err := r.Unstake(31_536_000)
	require.NoError(t, err)
	assert.Equal(t, delta.Withdrawal(100_000_000), d)
	assert.True(t, r.IsEmpty())
	assert.NoError(t, r.Validate())

	_, err = r.Unstake(31_536_001)
	assert.ErrorIs(t, err, reverts.ErrNotStaked)
}

func TestRestake(t *testing.T) {
	rules := classicRules()
	r := staked(t, rules, 100_000_000, 14, 0)

	_, err := r.Restake(rules, 14*day-1)
	assert.ErrorIs(t, err, reverts.ErrLocked)

	now := 14 * day
	d, err := r.Restake(rules, now)
	require.NoError(t, err)
	assert.Equal(t, delta.Compound(11_506_850), d)
	assert.Equal(t, uint64(111_506_850), r.Amount)
	assert.Equal(t, uint64(12_830_926), r.Rewards)
	assert.Equal(t, now+14*day, r.UnlockableAt)
	assert.Equal(t, uint64(14), r.Duration)
	assert.True(t, r.IsStaked)

	_, err = (&Record{}).Restake(rules, now)
	assert.ErrorIs(t, err, reverts.ErrNotStaked)
}

func TestRestakeOverflow(t *testing.T) {
	r := &Record{Amount: math.MaxUint64 - 1, Rewards: 2, Duration: 30, UnlockableAt: 1, IsStaked: true}
	before := *r
	_, err := r.Restake(classicRules(), 10)
	assert.ErrorIs(t, err, reverts.ErrOverflow)
	assert.Equal(t, before, *r)
}

func TestExtend(t *testing.T) {
	rules := classicRules()

	r := staked(t, rules, 100_000_000, 365, 0)
	_, err := r.Extend(rules, 100, 1_000_000)
	assert.ErrorIs(t, err, reverts.ErrDurationTooLong)
	_, err = r.Extend(rules, 0, 1_000_000)
	assert.ErrorIs(t, err, reverts.ErrDurationTooShort)

	r = staked(t, rules, 100_000_000, 200, 0)
	now := int64(1_000_000)
	d, err := r.Extend(rules, 50, now)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Equal(t, uint64(250), r.Duration)
	assert.Equal(t, now+250*day, r.UnlockableAt)
	assert.Equal(t, uint64(205_479_453), r.Rewards)

	_, err = r.Extend(rules, math.MaxUint64, now)
	assert.ErrorIs(t, err, reverts.ErrDurationTooLong)

	_, err = (&Record{}).Extend(rules, 1, now)
	assert.ErrorIs(t, err, reverts.ErrNotStaked)
}

func TestExpiryBoundaries(t *testing.T) {
	rules := pinnedRules()
	deadline := 30 * day

	// at the deadline everything is still permitted
	r := staked(t, rules, 100_000_000, 30, 0)
	_, err := r.Extend(rules, 1, deadline)
	assert.NoError(t, err)

	r = staked(t, rules, 100_000_000, 30, 0)
	_, err = r.TopUp(rules, mint, 100_000_000, deadline)
	assert.NoError(t, err)

	r = staked(t, rules, 100_000_000, 30, 0)
	_, err = r.Restake(rules, deadline)
	assert.NoError(t, err)

	r = staked(t, rules, 100_000_000, 30, 0)
	_, err = r.Unstake(deadline)
	assert.NoError(t, err)

	// one second later only unstake and restake are
	r = staked(t, rules, 100_000_000, 30, 0)
	_, err = r.Extend(rules, 1, deadline+1)
	assert.ErrorIs(t, err, reverts.ErrAlreadyUnlockable)
	_, err = r.TopUp(rules, mint, 100_000_000, deadline+1)
	assert.ErrorIs(t, err, reverts.ErrAlreadyUnlockable)
}

func TestTopUp(t *testing.T) {
	rules := pinnedRules()
	r := staked(t, rules, 100_000_000, 30, 0)

	now := 10*day + 5*3600
	d, err := r.TopUp(rules, mint, 100_000_000, now)
	require.NoError(t, err)
	assert.Equal(t, delta.Deposit(100_000_000), d)
	assert.Equal(t, uint64(200_000_000), r.Amount)
	// 19 whole days remain
	assert.Equal(t, uint64(31_232_877), r.Rewards)
	assert.Equal(t, 30*day, r.UnlockableAt)
	assert.Equal(t, uint64(30), r.Duration)
}

func TestTopUpPreconditions(t *testing.T) {
	rules := pinnedRules()

	_, err := staked(t, classicRules(), 100_000_000, 30, 0).TopUp(classicRules(), mint, 100_000_000, 1)
	assert.ErrorIs(t, err, reverts.ErrNotSupported)

	r := staked(t, rules, 100_000_000, 30, 0)
	before := *r

	_, err = r.TopUp(rules, other, 100_000_000, 1)
	assert.ErrorIs(t, err, reverts.ErrInvalidMint)

	_, err = (&Record{}).TopUp(rules, mint, 100_000_000, 1)
	assert.ErrorIs(t, err, reverts.ErrNotStaked)

	_, err = r.TopUp(rules, mint, stake.StakeMinimum-1, 1)
	assert.ErrorIs(t, err, reverts.ErrAmountNotEnough)

	assert.Equal(t, before, *r)

	huge := &Record{Amount: math.MaxUint64 - 10, Duration: 30, UnlockableAt: 100, IsStaked: true}
	_, err = huge.TopUp(rules, mint, stake.StakeMinimum, 1)
	assert.ErrorIs(t, err, reverts.ErrOverflow)
}

func TestTopUpLastDay(t *testing.T) {
	rules := pinnedRules()
	r := staked(t, rules, 100_000_000, 14, 0)

	_, err := r.TopUp(rules, mint, 100_000_000, 14*day-100)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), r.Rewards)
	assert.Equal(t, uint64(200_000_000), r.Amount)
}

func TestUnlockOverflow(t *testing.T) {
	rules := classicRules()
	r := &Record{}
	_, err := r.Stake(rules, owner, mint, 100_000_000, 30, vault, 1, math.MaxInt64-10)
	assert.ErrorIs(t, err, reverts.ErrOverflow)
	assert.True(t, r.IsEmpty())
}

func TestShortDay(t *testing.T) {
	cfg := stake.PinnedConfig(mint)
	cfg.SecondsPerDay = stake.TestSecondsPerDay
	rules := NewRules(cfg)
	assert.Equal(t, stake.TestSecondsPerDay, rules.SecondsPerDay())

	r := staked(t, rules, 100_000_000, 30, 1_000)
	assert.Equal(t, int64(1_000+30*60), r.UnlockableAt)
	assert.Equal(t, uint64(8_219_179), r.Rewards)
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Record{Amount: 1}).Validate())
	assert.Error(t, (&Record{IsStaked: true, Amount: 1, Duration: 30, UnlockableAt: 1}).Validate())
	assert.Error(t, (&Record{IsStaked: true, Amount: stake.StakeMinimum, Duration: 400, UnlockableAt: 1}).Validate())
	assert.Error(t, (&Record{IsStaked: true, Amount: stake.StakeMinimum, Duration: 30}).Validate())
	assert.NoError(t, (&Record{IsStaked: true, Amount: stake.StakeMinimum, Duration: 30, UnlockableAt: 1}).Validate())
}

func TestCopy(t *testing.T) {
	r := staked(t, classicRules(), 100_000_000, 30, 0)
	cpy := r.Copy()
	cpy.Amount = 1
	assert.Equal(t, uint64(100_000_000), r.Amount)
}
