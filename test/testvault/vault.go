// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testvault assembles an in-memory staker for tests.
package testvault

import (
	"github.com/dougstake/dougstake/clock"
	"github.com/dougstake/dougstake/lvldb"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/staker"
	"github.com/dougstake/dougstake/state"
	"github.com/dougstake/dougstake/transferdb"
)

// RewardFunds is the balance the reward vault starts with.
const RewardFunds = uint64(1_000_000_000_000)

// Vault is an initialized staker on in-memory storage, settled through an
// in-memory transfer db, with a manual clock.
type Vault struct {
	staker *staker.Staker
	clock  *clock.Manual
	db     *transferdb.TransferDB
	store  *lvldb.LevelDB
}

// NewDefault creates a vault with the classic config.
func NewDefault() (*Vault, error) {
	return New(stake.ClassicConfig())
}

// New creates an initialized vault with cfg. The clock starts at 1.
func New(cfg stake.Config) (*Vault, error) {
	v, err := NewUninitialized(cfg)
	if err != nil {
		return nil, err
	}
	if err := v.staker.Initialize(); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

// NewUninitialized creates a vault whose counters are not yet initialized.
func NewUninitialized(cfg stake.Config) (*Vault, error) {
	store, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	repo, err := state.New(store, 128)
	if err != nil {
		store.Close()
		return nil, err
	}
	db, err := transferdb.NewMem()
	if err != nil {
		store.Close()
		return nil, err
	}
	clk := clock.NewManual(1)

	stk, err := staker.New(repo, db, clk, cfg)
	if err == nil {
		err = db.Mint(stk.RewardVault(), RewardFunds)
	}
	if err != nil {
		db.Close()
		store.Close()
		return nil, err
	}
	return &Vault{
		staker: stk,
		clock:  clk,
		db:     db,
		store:  store,
	}, nil
}

func (v *Vault) Staker() *staker.Staker {
	return v.staker
}

func (v *Vault) Clock() *clock.Manual {
	return v.clock
}

func (v *Vault) TransferDB() *transferdb.TransferDB {
	return v.db
}

// Fund mints amount to each of the addresses.
func (v *Vault) Fund(amount uint64, addrs ...stake.Address) error {
	for _, addr := range addrs {
		if err := v.db.Mint(addr, amount); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying stores.
func (v *Vault) Close() {
	v.db.Close()
	v.store.Close()
}
