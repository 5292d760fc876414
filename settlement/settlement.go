// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/stake"
)

// ErrInsufficientBalance is returned when a transfer debits more than the source holds.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Transfer moves Amount base units from one vault to another.
type Transfer struct {
	From   stake.Address
	To     stake.Address
	Amount uint64
	Action string // the action that caused the transfer, for the journal
}

func (t *Transfer) String() string {
	return fmt.Sprintf("Transfer(%v -> %v, %v, %v)", t.From.AbbrevString(), t.To.AbbrevString(), t.Amount, t.Action)
}

// Pending is a prepared batch of transfers. Exactly one of Commit or Rollback
// must be called.
type Pending interface {
	Commit() error
	Rollback()
}

// Settlement is the token transfer primitive the dispatcher settles against.
// Prepare validates the whole batch and reserves it, so a successful Prepare
// followed by Commit applies every transfer or none.
type Settlement interface {
	Prepare(transfers []Transfer) (Pending, error)
}

// Filter drops zero-amount transfers.
func Filter(transfers []Transfer) []Transfer {
	out := transfers[:0:0]
	for _, t := range transfers {
		if t.Amount > 0 {
			out = append(out, t)
		}
	}
	return out
}
