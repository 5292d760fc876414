// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transferdb

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math/bits"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/settlement"
	"github.com/dougstake/dougstake/stake"
)

// TransferDB is a sqlite backed settlement ledger. It keeps balances and a
// journal of every committed transfer.
type TransferDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

var _ settlement.Settlement = (*TransferDB)(nil)

// New create or open transfer db at given path.
func New(path string) (transferDB *TransferDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if transferDB == nil {
			db.Close()
		}
	}()
	// a single connection serializes prepared batches, and keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(balanceTableSchema + transferTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &TransferDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a transfer db in ram.
func NewMem() (*TransferDB, error) {
	return New(":memory:")
}

// Close close the transfer db.
func (db *TransferDB) Close() {
	db.db.Close()
}

func (db *TransferDB) Path() string {
	return db.path
}

func (db *TransferDB) DriverVersion() string {
	return db.driverVersion
}

// Mint credits amount to addr.
func (db *TransferDB) Mint(addr stake.Address, amount uint64) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	bal, err := balanceOf(tx, addr)
	if err != nil {
		tx.Rollback()
		return err
	}
	sum, carry := bits.Add64(bal, amount, 0)
	if carry != 0 {
		tx.Rollback()
		return errors.Errorf("balance overflow: %v", addr)
	}
	if err := setBalance(tx, addr, sum); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Balance returns the balance of addr.
func (db *TransferDB) Balance(addr stake.Address) (uint64, error) {
	var data []byte
	err := db.db.QueryRow("SELECT amount FROM balance WHERE address = ?", addr.Bytes()).Scan(&data)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return decodeAmount(data), nil
}

// Prepare applies transfers inside a sqlite transaction which is left open
// until the returned batch is committed or rolled back.
func (db *TransferDB) Prepare(transfers []settlement.Transfer) (settlement.Pending, error) {
	tx, err := db.db.Begin()
	if err != nil {
		return nil, err
	}
	for _, t := range settlement.Filter(transfers) {
		if err := applyTransfer(tx, t); err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	return &batch{tx: tx}, nil
}

func applyTransfer(tx *sql.Tx, t settlement.Transfer) error {
	from, err := balanceOf(tx, t.From)
	if err != nil {
		return err
	}
	if from < t.Amount {
		return errors.Wrapf(settlement.ErrInsufficientBalance, "%v has %v, needs %v", t.From.AbbrevString(), from, t.Amount)
	}
	if err := setBalance(tx, t.From, from-t.Amount); err != nil {
		return err
	}

	to, err := balanceOf(tx, t.To)
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(to, t.Amount, 0)
	if carry != 0 {
		return errors.Errorf("balance overflow: %v", t.To)
	}
	if err := setBalance(tx, t.To, sum); err != nil {
		return err
	}

	_, err = tx.Exec("INSERT INTO transfer(action, sender, recipient, amount) VALUES (?, ?, ?, ?)",
		t.Action,
		t.From.Bytes(),
		t.To.Bytes(),
		encodeAmount(t.Amount))
	return err
}

// FilterTransfers queries the journal.
func (db *TransferDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT * FROM transfer ORDER BY seq ASC")
	}
	var args []any
	stmt := "SELECT * FROM transfer WHERE 1"
	if filter.Address != nil {
		args = append(args, filter.Address.Bytes(), filter.Address.Bytes())
		stmt += " AND (sender = ? OR recipient = ?) "
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		stmt += " AND action = ? "
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *TransferDB) queryTransfers(ctx context.Context, stmt string, args ...any) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq       int64
			action    string
			sender    []byte
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(
			&seq,
			&action,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			Seq:       uint64(seq),
			Action:    action,
			Sender:    stake.BytesToAddress(sender),
			Recipient: stake.BytesToAddress(recipient),
			Amount:    decodeAmount(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

type batch struct {
	tx *sql.Tx
}

func (b *batch) Commit() error {
	return b.tx.Commit()
}

func (b *batch) Rollback() {
	b.tx.Rollback()
}

func balanceOf(tx *sql.Tx, addr stake.Address) (uint64, error) {
	var data []byte
	err := tx.QueryRow("SELECT amount FROM balance WHERE address = ?", addr.Bytes()).Scan(&data)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return decodeAmount(data), nil
}

func setBalance(tx *sql.Tx, addr stake.Address, amount uint64) error {
	_, err := tx.Exec("INSERT OR REPLACE INTO balance(address, amount) VALUES (?, ?)", addr.Bytes(), encodeAmount(amount))
	return err
}

func encodeAmount(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

func decodeAmount(data []byte) uint64 {
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}
