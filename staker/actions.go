// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/delta"
	"github.com/dougstake/dougstake/record"
	"github.com/dougstake/dougstake/reverts"
	"github.com/dougstake/dougstake/settlement"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/vaultinfo"
)

// transition mutates rec at now and returns its counter delta and the
// transfers that settle it.
type transition func(rec *record.Record, now int64) (*delta.Delta, []settlement.Transfer, error)

// Stake locks amount for duration days. mint is the asserted token mint, it
// is only checked when the config pins one.
func (s *Staker) Stake(owner, mint stake.Address, amount, duration uint64) error {
	vault, bump := stake.UserVault(owner)
	return s.execute("stake", owner, func(rec *record.Record, now int64) (*delta.Delta, []settlement.Transfer, error) {
		d, err := rec.Stake(s.rules, owner, mint, amount, duration, vault, bump, now)
		if err != nil {
			return nil, nil, err
		}
		return d, []settlement.Transfer{{From: owner, To: vault, Amount: amount}}, nil
	})
}

// TopUp adds amount to an active lock.
func (s *Staker) TopUp(owner, mint stake.Address, amount uint64) error {
	return s.execute("top_up", owner, func(rec *record.Record, now int64) (*delta.Delta, []settlement.Transfer, error) {
		d, err := rec.TopUp(s.rules, mint, amount, now)
		if err != nil {
			return nil, nil, err
		}
		return d, []settlement.Transfer{{From: owner, To: rec.Vault, Amount: amount}}, nil
	})
}

// Extend lengthens the owner's lock by additional days.
func (s *Staker) Extend(owner stake.Address, additional uint64) error {
	return s.execute("extend", owner, func(rec *record.Record, now int64) (*delta.Delta, []settlement.Transfer, error) {
		d, err := rec.Extend(s.rules, additional, now)
		return d, nil, err
	})
}

// Restake compounds an expired lock.
func (s *Staker) Restake(owner stake.Address) error {
	return s.execute("restake", owner, func(rec *record.Record, now int64) (*delta.Delta, []settlement.Transfer, error) {
		rewards := rec.Rewards
		d, err := rec.Restake(s.rules, now)
		if err != nil {
			return nil, nil, err
		}
		return d, []settlement.Transfer{{From: s.rewardVault, To: rec.Vault, Amount: rewards}}, nil
	})
}

// Unstake pays out principal and reward of an expired lock.
func (s *Staker) Unstake(owner stake.Address) error {
	return s.execute("unstake", owner, func(rec *record.Record, now int64) (*delta.Delta, []settlement.Transfer, error) {
		amount, rewards := rec.Amount, rec.Rewards
		d, err := rec.Unstake(now)
		if err != nil {
			return nil, nil, err
		}
		return d, []settlement.Transfer{
			{From: rec.Vault, To: owner, Amount: amount},
			{From: s.rewardVault, To: owner, Amount: rewards},
		}, nil
	})
}

func (s *Staker) execute(action string, owner stake.Address, apply transition) (err error) {
	defer func() {
		recordAction(action, err)
		if err == nil {
			return
		}
		if reverts.IsRevertErr(err) {
			logger.Info("action rejected", "action", action, "owner", owner.AbbrevString(), "code", reverts.CodeOf(err), "err", err)
		} else {
			logger.Warn("action failed", "action", action, "owner", owner.AbbrevString(), "err", err)
		}
	}()

	unlock := s.owners.lock(owner)
	defer unlock()

	info, err := s.repo.VaultInfo()
	if err != nil {
		return err
	}
	if !info.IsInitialized {
		return reverts.ErrNotInitialized
	}

	now, err := s.clock.Now()
	if err != nil {
		return reverts.Wrap(reverts.ErrClockUnavailable, err)
	}

	prev, err := s.repo.Record(owner)
	if err != nil {
		return err
	}
	if prev.IsStaked && prev.Owner != owner {
		return reverts.ErrInvalidStakeAccount
	}

	next := prev.Copy()
	d, transfers, err := apply(next, now)
	if err != nil {
		return err
	}
	for i := range transfers {
		transfers[i].Action = action
	}
	if err := s.commit(owner, prev, next, d, transfers); err != nil {
		return err
	}

	logger.Debug(action,
		"owner", owner.AbbrevString(),
		"amount", next.Amount,
		"rewards", next.Rewards,
		"duration", next.Duration,
		"unlockableAt", next.UnlockableAt,
		"now", now,
	)
	return nil
}

// commit applies d to the vault counters and writes the record, counters and
// transfers together. A settlement that fails after the state is written is
// compensated by writing back the previous state.
func (s *Staker) commit(owner stake.Address, prev, next *record.Record, d *delta.Delta, transfers []settlement.Transfer) error {
	s.vault.Lock()
	defer s.vault.Unlock()

	prevInfo, err := s.repo.VaultInfo()
	if err != nil {
		return err
	}
	info := *prevInfo
	if err := info.Apply(d); err != nil {
		return err
	}

	stage := s.repo.Stage()
	if err := stage.PutRecord(owner, next); err != nil {
		return err
	}
	if err := stage.PutVaultInfo(&info); err != nil {
		return err
	}

	pending, err := s.settlement.Prepare(settlement.Filter(transfers))
	if err != nil {
		metricSettlementFailures().Add(1)
		return reverts.Wrap(reverts.ErrSettlementFailed, err)
	}
	if err := stage.Commit(); err != nil {
		pending.Rollback()
		return err
	}
	if err := pending.Commit(); err != nil {
		metricSettlementFailures().Add(1)
		if rerr := s.restore(owner, prev, prevInfo); rerr != nil {
			logger.Error("failed to restore state after settlement failure", "owner", owner, "err", rerr)
			return errors.WithMessagef(rerr, "restore state after settlement failure (%v)", err)
		}
		return reverts.Wrap(reverts.ErrSettlementFailed, err)
	}

	recordVaultInfo(&info)
	return nil
}

func (s *Staker) restore(owner stake.Address, rec *record.Record, info *vaultinfo.Info) error {
	stage := s.repo.Stage()
	if *rec == (record.Record{}) {
		if err := stage.DeleteRecord(owner); err != nil {
			return err
		}
	} else if err := stage.PutRecord(owner, rec); err != nil {
		return err
	}
	if err := stage.PutVaultInfo(info); err != nil {
		return err
	}
	return stage.Commit()
}
