// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/transferdb"
)

type FilteredTransfer struct {
	Seq       uint64              `json:"seq"`
	Action    string              `json:"action"`
	Sender    stake.Address       `json:"sender"`
	Recipient stake.Address       `json:"recipient"`
	Amount    math.HexOrDecimal64 `json:"amount"`
}

func convertTransfer(t *transferdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Seq:       t.Seq,
		Action:    t.Action,
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    math.HexOrDecimal64(t.Amount),
	}
}
