// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/dougstake/dougstake/api/utils"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/transferdb"
)

type Transfers struct {
	db    *transferdb.TransferDB
	limit uint64
}

func New(db *transferdb.TransferDB, logsLimit uint64) *Transfers {
	return &Transfers{
		db,
		logsLimit,
	}
}

func parseFilter(req *http.Request, limit uint64) (*transferdb.TransferFilter, error) {
	query := req.URL.Query()
	filter := &transferdb.TransferFilter{
		Action:  query.Get("action"),
		Options: &transferdb.Options{Limit: limit},
	}
	if s := query.Get("address"); s != "" {
		addr, err := stake.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "address"))
		}
		filter.Address = &addr
	}
	switch order := transferdb.Order(query.Get("order")); order {
	case "", transferdb.ASC, transferdb.DESC:
		filter.Order = order
	default:
		return nil, utils.BadRequest(errors.Errorf("order: unknown value %q", order))
	}
	if s := query.Get("offset"); s != "" {
		offset, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "offset"))
		}
		if offset > math.MaxInt64 {
			return nil, utils.BadRequest(errors.Errorf("offset: exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
		}
		filter.Options.Offset = offset
	}
	if s := query.Get("limit"); s != "" {
		l, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "limit"))
		}
		if l > limit {
			return nil, utils.Forbidden(errors.Errorf("limit: exceeds the maximum allowed value of %d", limit))
		}
		filter.Options.Limit = l
	}
	return filter, nil
}

func (t *Transfers) handleFilterTransfers(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req, t.limit)
	if err != nil {
		return err
	}
	transfers, err := t.db.FilterTransfers(req.Context(), filter)
	if err != nil {
		return err
	}
	res := make([]*FilteredTransfer, len(transfers))
	for i, trans := range transfers {
		res[i] = convertTransfer(trans)
	}
	return utils.WriteJSON(w, res)
}

func (t *Transfers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("transfers_filter").
		HandlerFunc(utils.WrapHandlerFunc(t.handleFilterTransfers))
}
