// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/api/utils"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/staker"
)

// Stakes serves the per-owner actions. The owner in the path is trusted, it
// is expected to be authenticated by the layer in front.
type Stakes struct {
	staker *staker.Staker
}

func New(stk *staker.Staker) *Stakes {
	return &Stakes{
		stk,
	}
}

func parseOwner(req *http.Request) (stake.Address, error) {
	owner, err := stake.ParseAddress(mux.Vars(req)["owner"])
	if err != nil {
		return stake.Address{}, utils.BadRequest(errors.WithMessage(err, "owner"))
	}
	return owner, nil
}

// mintOf returns the asserted mint, the zero handle when none was given.
func mintOf(m *stake.Address) stake.Address {
	if m == nil {
		return stake.Address{}
	}
	return *m
}

func (s *Stakes) respondRecord(w http.ResponseWriter, owner stake.Address) error {
	rec, err := s.staker.Get(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRecord(rec))
}

func (s *Stakes) handleGetRecord(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	return s.respondRecord(w, owner)
}

func (s *Stakes) handleStake(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	var body StakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	if body.Duration == nil {
		return utils.BadRequest(errors.New("duration: required"))
	}
	if err := s.staker.Stake(owner, mintOf(body.Mint), uint64(*body.Amount), uint64(*body.Duration)); err != nil {
		return err
	}
	return s.respondRecord(w, owner)
}

func (s *Stakes) handleTopUp(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	var body TopUpRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	if err := s.staker.TopUp(owner, mintOf(body.Mint), uint64(*body.Amount)); err != nil {
		return err
	}
	return s.respondRecord(w, owner)
}

func (s *Stakes) handleExtend(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	var body ExtendRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Duration == nil {
		return utils.BadRequest(errors.New("duration: required"))
	}
	if err := s.staker.Extend(owner, uint64(*body.Duration)); err != nil {
		return err
	}
	return s.respondRecord(w, owner)
}

func (s *Stakes) handleRestake(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	if err := s.staker.Restake(owner); err != nil {
		return err
	}
	return s.respondRecord(w, owner)
}

func (s *Stakes) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	owner, err := parseOwner(req)
	if err != nil {
		return err
	}
	if err := s.staker.Unstake(owner); err != nil {
		return err
	}
	return s.respondRecord(w, owner)
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("stakes_get_record").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetRecord))
	sub.Path("/{owner}/stake").
		Methods(http.MethodPost).
		Name("stakes_stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/{owner}/top-up").
		Methods(http.MethodPost).
		Name("stakes_top_up").
		HandlerFunc(utils.WrapHandlerFunc(s.handleTopUp))
	sub.Path("/{owner}/extend").
		Methods(http.MethodPost).
		Name("stakes_extend").
		HandlerFunc(utils.WrapHandlerFunc(s.handleExtend))
	sub.Path("/{owner}/restake").
		Methods(http.MethodPost).
		Name("stakes_restake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleRestake))
	sub.Path("/{owner}/unstake").
		Methods(http.MethodPost).
		Name("stakes_unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
}
