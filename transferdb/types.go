// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transferdb

import (
	"github.com/dougstake/dougstake/stake"
)

// Transfer is a committed transfer as stored in the journal.
type Transfer struct {
	Seq       uint64
	Action    string
	Sender    stake.Address
	Recipient stake.Address
	Amount    uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Options struct {
	Offset uint64
	Limit  uint64
}

// TransferFilter selects journal entries. A nil Address matches all entries.
type TransferFilter struct {
	Address *stake.Address // matches either side
	Action  string
	Options *Options
	Order   Order
}
