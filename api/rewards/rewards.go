// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/api/utils"
	"github.com/dougstake/dougstake/stake"
)

// Calculator computes the reward of a lock.
type Calculator interface {
	Rewards(amount, days uint64) uint64
}

type Quote struct {
	Amount   math.HexOrDecimal64 `json:"amount"`
	Duration uint64              `json:"duration"`
	Rewards  math.HexOrDecimal64 `json:"rewards"`
}

type Rewards struct {
	calc Calculator
}

func New(calc Calculator) *Rewards {
	return &Rewards{
		calc,
	}
}

func parseUint64Query(req *http.Request, name string) (uint64, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return 0, utils.BadRequest(errors.Errorf("%s: required", name))
	}
	v, ok := math.ParseUint64(s)
	if !ok {
		return 0, utils.BadRequest(errors.Errorf("%s: invalid number %q", name, s))
	}
	return v, nil
}

func (r *Rewards) handleGetRewards(w http.ResponseWriter, req *http.Request) error {
	amount, err := parseUint64Query(req, "amount")
	if err != nil {
		return err
	}
	duration, err := parseUint64Query(req, "duration")
	if err != nil {
		return err
	}
	if duration > stake.DurationMax {
		return utils.BadRequest(errors.Errorf("duration: exceeds the maximum allowed value of %d", stake.DurationMax))
	}
	return utils.WriteJSON(w, &Quote{
		Amount:   math.HexOrDecimal64(amount),
		Duration: duration,
		Rewards:  math.HexOrDecimal64(r.calc.Rewards(amount, duration)),
	})
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("rewards_get_quote").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetRewards))
}
