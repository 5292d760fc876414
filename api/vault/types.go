// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/staker"
	"github.com/dougstake/dougstake/vaultinfo"
)

type Config struct {
	APRFactor     float64        `json:"aprFactor"`
	SecondsPerDay uint64         `json:"secondsPerDay"`
	TokenMint     *stake.Address `json:"tokenMint"`
	TopUp         bool           `json:"topUp"`
}

type Info struct {
	TotalValueLocked    math.HexOrDecimal64 `json:"totalValueLocked"`
	LifetimeValueLocked math.HexOrDecimal64 `json:"lifetimeValueLocked"`
	IsInitialized       bool                `json:"isInitialized"`
	RewardVault         stake.Address       `json:"rewardVault"`
	Config              Config              `json:"config"`
}

type AuditReport struct {
	Records   int                 `json:"records"`
	Active    int                 `json:"active"`
	ActiveSum math.HexOrDecimal64 `json:"activeSum"`
}

func convertInfo(info *vaultinfo.Info, rewardVault stake.Address, cfg stake.Config) *Info {
	return &Info{
		TotalValueLocked:    math.HexOrDecimal64(info.TotalValueLocked),
		LifetimeValueLocked: math.HexOrDecimal64(info.LifetimeValueLocked),
		IsInitialized:       info.IsInitialized,
		RewardVault:         rewardVault,
		Config: Config{
			APRFactor:     cfg.APRFactor,
			SecondsPerDay: cfg.SecondsPerDay,
			TokenMint:     cfg.TokenMint,
			TopUp:         cfg.TopUp,
		},
	}
}

func convertAuditReport(r *staker.AuditReport) *AuditReport {
	return &AuditReport{
		Records:   r.Records,
		Active:    r.Active,
		ActiveSum: math.HexOrDecimal64(r.ActiveSum),
	}
}
