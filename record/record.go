// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package record

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/delta"
	"github.com/dougstake/dougstake/reverts"
	"github.com/dougstake/dougstake/stake"
)

// Record is the stake position of one owner.
// Owner, Vault, VaultBump and Duration are undefined while the record is inactive.
type Record struct {
	Owner        stake.Address
	Amount       uint64
	Rewards      uint64
	Duration     uint64
	Vault        stake.Address
	VaultBump    uint8
	UnlockableAt int64
	IsStaked     bool
}

// IsEmpty returns whether the record holds no active position.
func (r *Record) IsEmpty() bool {
	return !r.IsStaked && r.Amount == 0 && r.Rewards == 0 && r.UnlockableAt == 0
}

// Copy returns a copy of the record.
func (r *Record) Copy() *Record {
	cpy := *r
	return &cpy
}

// Stake activates the record.
func (r *Record) Stake(
	rules *Rules,
	owner stake.Address,
	mint stake.Address,
	amount uint64,
	duration uint64,
	vault stake.Address,
	vaultBump uint8,
	now int64,
) (*delta.Delta, error) {
	if err := rules.checkMint(mint); err != nil {
		return nil, err
	}
	if r.IsStaked {
		return nil, reverts.ErrAlreadyStaked
	}
	if amount < stake.StakeMinimum {
		return nil, reverts.ErrAmountNotEnough
	}
	if duration < stake.DurationMin {
		return nil, reverts.ErrDurationTooShort
	}
	if duration > stake.DurationMax {
		return nil, reverts.ErrDurationTooLong
	}
	unlockableAt, err := rules.unlockAt(now, duration)
	if err != nil {
		return nil, err
	}

	r.Owner = owner
	r.Amount = amount
	r.Rewards = rules.model.Rewards(amount, duration)
	r.Vault = vault
	r.VaultBump = vaultBump
	r.Duration = duration
	r.UnlockableAt = unlockableAt
	r.IsStaked = true

	return delta.Deposit(amount), nil
}

// TopUp adds principal to an active lock without moving its deadline. The
// reward is recomputed over the whole lock days that remain.
func (r *Record) TopUp(rules *Rules, mint stake.Address, amount uint64, now int64) (*delta.Delta, error) {
	if !rules.topUp {
		return nil, reverts.ErrNotSupported
	}
	if err := rules.checkMint(mint); err != nil {
		return nil, err
	}
	if !r.IsStaked {
		return nil, reverts.ErrNotStaked
	}
	if r.UnlockableAt < now {
		return nil, reverts.ErrAlreadyUnlockable
	}
	if amount < stake.StakeMinimum {
		return nil, reverts.ErrAmountNotEnough
	}
	total, carry := bits.Add64(r.Amount, amount, 0)
	if carry != 0 {
		return nil, reverts.ErrOverflow
	}

	r.Amount = total
	r.Rewards = rules.model.Rewards(total, rules.remainingDays(r.UnlockableAt, now))

	return delta.Deposit(amount), nil
}

// Extend lengthens the lock. The new deadline counts from now, not from the
// previous deadline.
func (r *Record) Extend(rules *Rules, additional uint64, now int64) (*delta.Delta, error) {
	if !r.IsStaked {
		return nil, reverts.ErrNotStaked
	}
	if additional == 0 {
		return nil, reverts.ErrDurationTooShort
	}
	if r.UnlockableAt < now {
		return nil, reverts.ErrAlreadyUnlockable
	}
	if r.Duration > stake.DurationMax || additional > stake.DurationMax-r.Duration {
		return nil, reverts.ErrDurationTooLong
	}
	duration := r.Duration + additional
	unlockableAt, err := rules.unlockAt(now, duration)
	if err != nil {
		return nil, err
	}

	r.Duration = duration
	r.UnlockableAt = unlockableAt
	r.Rewards = rules.model.Rewards(r.Amount, duration)

	return nil, nil
}

// Restake rolls the reward into principal and starts a new lock of the same
// duration.
func (r *Record) Restake(rules *Rules, now int64) (*delta.Delta, error) {
	if !r.IsStaked {
		return nil, reverts.ErrNotStaked
	}
	if r.UnlockableAt > now {
		return nil, reverts.ErrLocked
	}
	amount, carry := bits.Add64(r.Amount, r.Rewards, 0)
	if carry != 0 {
		return nil, reverts.ErrOverflow
	}
	unlockableAt, err := rules.unlockAt(now, r.Duration)
	if err != nil {
		return nil, err
	}

	compounded := r.Rewards
	r.Amount = amount
	r.Rewards = rules.model.Rewards(amount, r.Duration)
	r.UnlockableAt = unlockableAt

	return delta.Compound(compounded), nil
}

// Unstake closes the position once the lock has expired.
func (r *Record) Unstake(now int64) (*delta.Delta, error) {
	if !r.IsStaked {
		return nil, reverts.ErrNotStaked
	}
	if r.UnlockableAt > now {
		return nil, reverts.ErrLocked
	}

	withdrawn := r.Amount
	r.Amount = 0
	r.Rewards = 0
	r.UnlockableAt = 0
	r.IsStaked = false

	return delta.Withdrawal(withdrawn), nil
}

// Validate checks the quiescent-state invariants of the record.
func (r *Record) Validate() error {
	if !r.IsStaked {
		if r.Amount != 0 || r.Rewards != 0 || r.UnlockableAt != 0 {
			return errors.Errorf("inactive record holds amount=%d rewards=%d unlockableAt=%d", r.Amount, r.Rewards, r.UnlockableAt)
		}
		return nil
	}
	if r.Amount < stake.StakeMinimum {
		return errors.Errorf("active record below minimum: %d", r.Amount)
	}
	if r.Duration < stake.DurationMin || r.Duration > stake.DurationMax {
		return errors.Errorf("active record duration out of range: %d", r.Duration)
	}
	if r.UnlockableAt <= 0 {
		return errors.Errorf("active record without deadline: %d", r.UnlockableAt)
	}
	return nil
}
