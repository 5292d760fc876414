// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

import (
	"math/bits"
	"sync"

	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/stake"
)

// Ledger is an in-memory Settlement. A prepared batch holds the ledger lock
// until it is committed or rolled back.
type Ledger struct {
	lock     sync.Mutex
	balances map[stake.Address]uint64
	journal  []Transfer
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[stake.Address]uint64)}
}

// Mint credits amount to addr out of thin air.
func (l *Ledger) Mint(addr stake.Address, amount uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	sum, carry := bits.Add64(l.balances[addr], amount, 0)
	if carry != 0 {
		return errors.Errorf("balance overflow: %v", addr)
	}
	l.balances[addr] = sum
	return nil
}

// Balance returns the balance of addr.
func (l *Ledger) Balance(addr stake.Address) uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.balances[addr]
}

// Journal returns the committed transfers in order.
func (l *Ledger) Journal() []Transfer {
	l.lock.Lock()
	defer l.lock.Unlock()

	return append([]Transfer(nil), l.journal...)
}

// Prepare validates transfers against current balances.
func (l *Ledger) Prepare(transfers []Transfer) (Pending, error) {
	l.lock.Lock()

	next := make(map[stake.Address]uint64)
	balanceOf := func(addr stake.Address) uint64 {
		if b, ok := next[addr]; ok {
			return b
		}
		return l.balances[addr]
	}
	for _, t := range Filter(transfers) {
		from := balanceOf(t.From)
		if from < t.Amount {
			l.lock.Unlock()
			return nil, errors.Wrapf(ErrInsufficientBalance, "%v has %v, needs %v", t.From.AbbrevString(), from, t.Amount)
		}
		next[t.From] = from - t.Amount

		to, carry := bits.Add64(balanceOf(t.To), t.Amount, 0)
		if carry != 0 {
			l.lock.Unlock()
			return nil, errors.Errorf("balance overflow: %v", t.To)
		}
		next[t.To] = to
	}
	return &pendingBatch{ledger: l, next: next, transfers: Filter(transfers)}, nil
}

type pendingBatch struct {
	ledger    *Ledger
	next      map[stake.Address]uint64
	transfers []Transfer
	done      bool
}

func (p *pendingBatch) Commit() error {
	if p.done {
		return errors.New("batch already finalized")
	}
	p.done = true
	defer p.ledger.lock.Unlock()

	for addr, b := range p.next {
		p.ledger.balances[addr] = b
	}
	p.ledger.journal = append(p.ledger.journal, p.transfers...)
	return nil
}

func (p *pendingBatch) Rollback() {
	if p.done {
		return
	}
	p.done = true
	p.ledger.lock.Unlock()
}
