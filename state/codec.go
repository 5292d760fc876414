// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/record"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/vaultinfo"
)

// recordBody is the storage form of record.Record.
type recordBody struct {
	Owner        stake.Address
	Amount       uint64
	Rewards      uint64
	Duration     uint64
	Vault        stake.Address
	VaultBump    uint8
	UnlockableAt uint64 // rlp has no signed integers
	IsStaked     bool
}

func encodeRecord(r *record.Record) ([]byte, error) {
	if r.UnlockableAt < 0 {
		return nil, errors.Errorf("negative unlock time %d", r.UnlockableAt)
	}
	return rlp.EncodeToBytes(&recordBody{
		Owner:        r.Owner,
		Amount:       r.Amount,
		Rewards:      r.Rewards,
		Duration:     r.Duration,
		Vault:        r.Vault,
		VaultBump:    r.VaultBump,
		UnlockableAt: uint64(r.UnlockableAt),
		IsStaked:     r.IsStaked,
	})
}

func decodeRecord(data []byte) (*record.Record, error) {
	var body recordBody
	if err := rlp.DecodeBytes(data, &body); err != nil {
		return nil, errors.Wrap(err, "decode record")
	}
	return &record.Record{
		Owner:        body.Owner,
		Amount:       body.Amount,
		Rewards:      body.Rewards,
		Duration:     body.Duration,
		Vault:        body.Vault,
		VaultBump:    body.VaultBump,
		UnlockableAt: int64(body.UnlockableAt),
		IsStaked:     body.IsStaked,
	}, nil
}

type vaultInfoBody struct {
	TotalValueLocked    uint64
	LifetimeValueLocked uint64
	IsInitialized       bool
}

func encodeVaultInfo(info *vaultinfo.Info) ([]byte, error) {
	return rlp.EncodeToBytes(&vaultInfoBody{
		TotalValueLocked:    info.TotalValueLocked,
		LifetimeValueLocked: info.LifetimeValueLocked,
		IsInitialized:       info.IsInitialized,
	})
}

func decodeVaultInfo(data []byte) (*vaultinfo.Info, error) {
	var body vaultInfoBody
	if err := rlp.DecodeBytes(data, &body); err != nil {
		return nil, errors.Wrap(err, "decode vault info")
	}
	return &vaultinfo.Info{
		TotalValueLocked:    body.TotalValueLocked,
		LifetimeValueLocked: body.LifetimeValueLocked,
		IsInitialized:       body.IsInitialized,
	}, nil
}
