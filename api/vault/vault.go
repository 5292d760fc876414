// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dougstake/dougstake/api/utils"
	"github.com/dougstake/dougstake/staker"
)

type Vault struct {
	staker *staker.Staker
}

func New(stk *staker.Staker) *Vault {
	return &Vault{
		stk,
	}
}

func (v *Vault) respondInfo(w http.ResponseWriter) error {
	info, err := v.staker.VaultInfo()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertInfo(info, v.staker.RewardVault(), v.staker.Config()))
}

func (v *Vault) handleGetInfo(w http.ResponseWriter, _ *http.Request) error {
	return v.respondInfo(w)
}

func (v *Vault) handleInitialize(w http.ResponseWriter, _ *http.Request) error {
	if err := v.staker.Initialize(); err != nil {
		return err
	}
	return v.respondInfo(w)
}

func (v *Vault) handleAudit(w http.ResponseWriter, _ *http.Request) error {
	report, err := v.staker.Audit()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAuditReport(report))
}

func (v *Vault) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("vault_get_info").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetInfo))
	sub.Path("/initialize").
		Methods(http.MethodPost).
		Name("vault_initialize").
		HandlerFunc(utils.WrapHandlerFunc(v.handleInitialize))
	sub.Path("/audit").
		Methods(http.MethodGet).
		Name("vault_audit").
		HandlerFunc(utils.WrapHandlerFunc(v.handleAudit))
}
