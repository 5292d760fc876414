// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/api/utils"
	"github.com/dougstake/dougstake/log"
	"github.com/dougstake/dougstake/stake"
)

var logger = log.WithContext("pkg", "accounts")

// Ledger holds the token balances.
type Ledger interface {
	Balance(addr stake.Address) (uint64, error)
	Mint(addr stake.Address, amount uint64) error
}

type Account struct {
	Address stake.Address       `json:"address"`
	Balance math.HexOrDecimal64 `json:"balance"`
}

type MintRequest struct {
	Amount *math.HexOrDecimal64 `json:"amount"`
}

// Accounts serves balances, and in solo mode a faucet minting test tokens.
type Accounts struct {
	ledger      Ledger
	faucet      bool
	faucetLimit uint64
}

// New creates the accounts api. A zero faucetLimit disables the faucet.
func New(ledger Ledger, faucetLimit uint64) *Accounts {
	return &Accounts{
		ledger:      ledger,
		faucet:      faucetLimit > 0,
		faucetLimit: faucetLimit,
	}
}

func parseAddress(req *http.Request) (stake.Address, error) {
	addr, err := stake.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return stake.Address{}, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

func (a *Accounts) respondAccount(w http.ResponseWriter, addr stake.Address) error {
	bal, err := a.ledger.Balance(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{
		Address: addr,
		Balance: math.HexOrDecimal64(bal),
	})
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	return a.respondAccount(w, addr)
}

func (a *Accounts) handleMint(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	var body MintRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil || *body.Amount == 0 {
		return utils.BadRequest(errors.New("amount: required"))
	}
	if uint64(*body.Amount) > a.faucetLimit {
		return utils.Forbidden(errors.Errorf("amount: exceeds the maximum allowed value of %d", a.faucetLimit))
	}
	if err := a.ledger.Mint(addr, uint64(*body.Amount)); err != nil {
		return err
	}
	logger.Debug("faucet minted", "address", addr.AbbrevString(), "amount", uint64(*body.Amount))
	return a.respondAccount(w, addr)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	if a.faucet {
		sub.Path("/{address}/faucet").
			Methods(http.MethodPost).
			Name("accounts_faucet").
			HandlerFunc(utils.WrapHandlerFunc(a.handleMint))
	}
}
