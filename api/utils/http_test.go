// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougstake/dougstake/reverts"
)

func serve(f HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	WrapHandlerFunc(f)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestWrapHandlerFunc(t *testing.T) {
	rec := serve(func(w http.ResponseWriter, _ *http.Request) error {
		return WriteJSON(w, M{"ok": true})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return BadRequest(errors.New("amount: required"))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "amount: required\n", rec.Body.String())

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return HTTPError(nil, http.StatusNotFound)
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(func(http.ResponseWriter, *http.Request) error {
		return errors.New("disk on fire")
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWrapHandlerFuncReverts(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{reverts.ErrNotStaked, http.StatusConflict, "NotStaked"},
		{reverts.ErrAmountNotEnough, http.StatusBadRequest, "AmountNotEnough"},
		{reverts.ErrInvalidMint, http.StatusBadRequest, "InvalidMint"},
		{reverts.Wrap(reverts.ErrSettlementFailed, errors.New("insufficient balance")), http.StatusServiceUnavailable, "SettlementFailed"},
		{errors.WithMessage(reverts.ErrLocked, "unstake"), http.StatusConflict, "Locked"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := serve(func(http.ResponseWriter, *http.Request) error { return tt.err })
			assert.Equal(t, tt.status, rec.Code)

			var body RevertError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.err.Error(), body.Message)
		})
	}
}

func TestParseJSON(t *testing.T) {
	var v struct {
		Amount uint64 `json:"amount"`
	}
	require.NoError(t, ParseJSON(strings.NewReader(`{"amount":5}`), &v))
	assert.Equal(t, uint64(5), v.Amount)

	assert.Error(t, ParseJSON(strings.NewReader(`{"amount":5,"extra":1}`), &v))
	assert.Error(t, ParseJSON(strings.NewReader(`{`), &v))
}
