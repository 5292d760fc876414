// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()

	assert.Nil(t, m.GetOrCreateHandler())
	m.GetOrCreateCountMeter("c").Add(1)
	m.GetOrCreateCountVecMeter("cv", []string{"a"}).AddWithLabel(1, map[string]string{"a": "b"})
	m.GetOrCreateGaugeMeter("g").Set(1)
	m.GetOrCreateHistogramVecMeter("h", []string{"a"}, BucketHTTPReqs).ObserveWithLabels(1, map[string]string{"a": "b"})
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	f := LazyLoad(func() int {
		calls++
		return 42
	})
	assert.Equal(t, 42, f())
	assert.Equal(t, 42, f())
	assert.Equal(t, 1, calls)
}

func TestPrometheusMetrics(t *testing.T) {
	old := metrics
	defer func() { metrics = old }()

	InitializePrometheusMetrics()
	_, ok := metrics.(*prometheusMetrics)
	require.True(t, ok)

	counter := LazyLoadCounter("test_counter")
	counter().Add(1)
	counter().Add(1)
	assert.Same(t, Counter("test_counter"), counter())

	CounterVec("test_actions", []string{"action", "result"}).AddWithLabel(1, map[string]string{"action": "stake", "result": "ok"})
	gauge := LazyLoadGauge("test_tvl")
	gauge().Set(100)
	gauge().Add(5)
	LazyLoadHistogramVec("test_duration_ms", []string{"method"}, BucketHTTPReqs)().ObserveWithLabels(3, map[string]string{"method": "GET"})

	srv := httptest.NewServer(HTTPHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "dougstake_test_counter 2")
	assert.Contains(t, text, `dougstake_test_actions{action="stake",result="ok"} 1`)
	assert.Contains(t, text, "dougstake_test_tvl 105")
	assert.Contains(t, text, `dougstake_test_duration_ms_count{method="GET"} 1`)
	assert.Contains(t, text, "go_goroutines")
}
