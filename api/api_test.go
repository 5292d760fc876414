// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougstake/dougstake/api/accounts"
	"github.com/dougstake/dougstake/api/rewards"
	"github.com/dougstake/dougstake/api/stakes"
	"github.com/dougstake/dougstake/api/transfers"
	"github.com/dougstake/dougstake/api/vault"
	"github.com/dougstake/dougstake/metrics"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/test/testvault"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

var bob = stake.BytesToAddress([]byte("bob"))

const origin = "http://example.com"

func httpDo(t *testing.T, method, url, body string, header ...string) (*http.Response, []byte) {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, data
}

func doJSON[T any](t *testing.T, method, url, body string) *T {
	res, data := httpDo(t, method, url, body)
	require.Equal(t, http.StatusOK, res.StatusCode, string(data))
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return &v
}

func TestAPI(t *testing.T) {
	tv, err := testvault.NewDefault()
	require.NoError(t, err)
	defer tv.Close()

	ts := httptest.NewServer(New(tv.Staker(), tv.TransferDB(), Options{
		AllowedOrigins: origin,
		EnableMetrics:  true,
		LogsLimit:      100,
		FaucetLimit:    1_000_000_000,
	}))
	defer ts.Close()
	metricsServer := httptest.NewServer(metrics.HTTPHandler())
	defer metricsServer.Close()

	owner := ts.URL + "/stakes/" + bob.String()

	acc := doJSON[accounts.Account](t, http.MethodPost, ts.URL+"/accounts/"+bob.String()+"/faucet", `{"amount":"500000000"}`)
	assert.Equal(t, uint64(500_000_000), uint64(acc.Balance))

	rec := doJSON[stakes.Record](t, http.MethodPost, owner+"/stake", `{"amount":"100000000","duration":"365"}`)
	assert.Equal(t, uint64(300_000_000), uint64(rec.Rewards))

	acc = doJSON[accounts.Account](t, http.MethodGet, ts.URL+"/accounts/"+bob.String(), "")
	assert.Equal(t, uint64(400_000_000), uint64(acc.Balance))

	info := doJSON[vault.Info](t, http.MethodGet, ts.URL+"/vault", "")
	assert.Equal(t, uint64(100_000_000), uint64(info.TotalValueLocked))
	assert.True(t, info.IsInitialized)

	list := doJSON[[]*transfers.FilteredTransfer](t, http.MethodGet, ts.URL+"/transfers?address="+bob.String(), "")
	require.Len(t, *list, 1)
	assert.Equal(t, "stake", (*list)[0].Action)

	quote := doJSON[rewards.Quote](t, http.MethodGet, ts.URL+"/rewards?amount=100000000&duration=14", "")
	assert.Equal(t, uint64(11_506_850), uint64(quote.Rewards))

	res, _ := httpDo(t, http.MethodGet, owner, "", "Origin", origin)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, origin, res.Header.Get("Access-Control-Allow-Origin"))

	res, _ = httpDo(t, http.MethodGet, owner, "", "Origin", "http://elsewhere.com")
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))

	res, data := httpDo(t, http.MethodPost, owner+"/unstake", "")
	assert.Equal(t, http.StatusConflict, res.StatusCode, string(data))

	// request metrics are labelled by route name
	_, body := httpDo(t, http.MethodGet, metricsServer.URL, "")
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	family, ok := families["dougstake_api_request_count"]
	require.True(t, ok)
	counts := requestCounts(family)
	assert.Equal(t, float64(1), counts["stakes_stake POST 200"])
	assert.Equal(t, float64(2), counts["stakes_get_record GET 200"])
	assert.Equal(t, float64(1), counts["stakes_unstake POST 409"])

	_, ok = families["dougstake_staker_actions_count"]
	assert.True(t, ok)
}

// requestCounts sums the request counter by "name method code".
func requestCounts(family *dto.MetricFamily) map[string]float64 {
	counts := make(map[string]float64)
	for _, m := range family.GetMetric() {
		labels := make(map[string]string)
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		counts[labels["name"]+" "+labels["method"]+" "+labels["code"]] += m.GetCounter().GetValue()
	}
	return counts
}
