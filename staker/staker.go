// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/bits"
	"sync"

	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/clock"
	"github.com/dougstake/dougstake/log"
	"github.com/dougstake/dougstake/record"
	"github.com/dougstake/dougstake/reverts"
	"github.com/dougstake/dougstake/settlement"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/state"
	"github.com/dougstake/dougstake/vaultinfo"
)

var logger = log.WithContext("pkg", "staker")

// Staker dispatches the stake actions. Each action is applied to the owner's
// record, the vault counters and the settlement ledger as a unit.
type Staker struct {
	cfg         stake.Config
	rules       *record.Rules
	repo        *state.Repository
	settlement  settlement.Settlement
	clock       clock.Clock
	rewardVault stake.Address

	owners *ownerLocks
	vault  sync.Mutex // guards the vault counters, taken after an owner lock
}

// New creates a staker. The config is validated.
func New(repo *state.Repository, settle settlement.Settlement, clk clock.Clock, cfg stake.Config) (*Staker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Staker{
		cfg:         cfg,
		rules:       record.NewRules(cfg),
		repo:        repo,
		settlement:  settle,
		clock:       clk,
		rewardVault: stake.RewardVault(),
		owners:      newOwnerLocks(),
	}, nil
}

// Config returns the active config.
func (s *Staker) Config() stake.Config {
	return s.cfg
}

// RewardVault returns the handle of the vault rewards are paid from.
func (s *Staker) RewardVault() stake.Address {
	return s.rewardVault
}

// Get returns the owner's record. An owner who never staked gets a zero record.
// The read holds the owner lock, so a record loaded from the store can never
// land in the cache after a newer one committed by an action.
func (s *Staker) Get(owner stake.Address) (*record.Record, error) {
	unlock := s.owners.lock(owner)
	defer unlock()

	return s.repo.Record(owner)
}

// VaultInfo returns the vault counters.
func (s *Staker) VaultInfo() (*vaultinfo.Info, error) {
	return s.repo.VaultInfo()
}

// Rewards computes the reward for amount locked over days.
func (s *Staker) Rewards(amount, days uint64) uint64 {
	return s.rules.Model().Rewards(amount, days)
}

// AuditReport summarizes a consistency pass over the stored state.
type AuditReport struct {
	Records   int
	Active    int
	ActiveSum uint64
	Info      vaultinfo.Info
}

// Audit checks every record against the record invariants and the vault
// counters against the active principal.
func (s *Staker) Audit() (*AuditReport, error) {
	s.vault.Lock()
	defer s.vault.Unlock()

	info, err := s.repo.VaultInfo()
	if err != nil {
		return nil, err
	}
	report := &AuditReport{Info: *info}

	err = s.repo.ForEachRecord(func(owner stake.Address, rec *record.Record) error {
		report.Records++
		if err := rec.Validate(); err != nil {
			return errors.WithMessagef(err, "record %v", owner)
		}
		if !rec.IsStaked {
			return nil
		}
		if rec.Owner != owner {
			return errors.Errorf("record %v is owned by %v", owner, rec.Owner)
		}
		sum, carry := bits.Add64(report.ActiveSum, rec.Amount, 0)
		if carry != 0 {
			return errors.New("active principal overflows")
		}
		report.ActiveSum = sum
		report.Active++
		return nil
	})
	if err != nil {
		return report, err
	}
	return report, info.Check(report.ActiveSum)
}

// Initialize creates the vault counters. It can only succeed once.
func (s *Staker) Initialize() (err error) {
	defer func() { recordAction("initialize", err) }()

	s.vault.Lock()
	defer s.vault.Unlock()

	info, err := s.repo.VaultInfo()
	if err != nil {
		return err
	}
	if err := info.Initialize(); err != nil {
		logger.Info("initialize rejected", "code", reverts.CodeOf(err))
		return err
	}
	stage := s.repo.Stage()
	if err := stage.PutVaultInfo(info); err != nil {
		return err
	}
	if err := stage.Commit(); err != nil {
		return err
	}
	recordVaultInfo(info)
	logger.Info("vault initialized")
	return nil
}
