// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/dougstake/dougstake/record"
	"github.com/dougstake/dougstake/stake"
)

// StakeRequest opens a lock. Mint may be omitted when no mint is pinned.
type StakeRequest struct {
	Amount   *math.HexOrDecimal64 `json:"amount"`
	Duration *math.HexOrDecimal64 `json:"duration"`
	Mint     *stake.Address       `json:"mint"`
}

type TopUpRequest struct {
	Amount *math.HexOrDecimal64 `json:"amount"`
	Mint   *stake.Address       `json:"mint"`
}

type ExtendRequest struct {
	Duration *math.HexOrDecimal64 `json:"duration"`
}

// Record is the json form of a stake record.
type Record struct {
	Owner        stake.Address       `json:"owner"`
	Amount       math.HexOrDecimal64 `json:"amount"`
	Rewards      math.HexOrDecimal64 `json:"rewards"`
	Duration     uint64              `json:"duration"`
	Vault        stake.Address       `json:"vault"`
	VaultBump    uint8               `json:"vaultBump"`
	UnlockableAt int64               `json:"unlockableAt"`
	IsStaked     bool                `json:"isStaked"`
}

func convertRecord(r *record.Record) *Record {
	return &Record{
		Owner:        r.Owner,
		Amount:       math.HexOrDecimal64(r.Amount),
		Rewards:      math.HexOrDecimal64(r.Rewards),
		Duration:     r.Duration,
		Vault:        r.Vault,
		VaultBump:    r.VaultBump,
		UnlockableAt: r.UnlockableAt,
		IsStaked:     r.IsStaked,
	}
}
