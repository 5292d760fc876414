// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/dougstake/dougstake/api/accounts"
	"github.com/dougstake/dougstake/api/middleware"
	"github.com/dougstake/dougstake/api/rewards"
	"github.com/dougstake/dougstake/api/stakes"
	"github.com/dougstake/dougstake/api/transfers"
	"github.com/dougstake/dougstake/api/vault"
	"github.com/dougstake/dougstake/log"
	"github.com/dougstake/dougstake/staker"
	"github.com/dougstake/dougstake/transferdb"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	PprofOn              bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	EnableMetrics        bool
	LogsLimit            uint64
	FaucetLimit          uint64 // zero disables the faucet
}

// New return api router
func New(
	stk *staker.Staker,
	transferDB *transferdb.TransferDB,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	vault.New(stk).
		Mount(router, "/vault")
	stakes.New(stk).
		Mount(router, "/stakes")
	rewards.New(stk).
		Mount(router, "/rewards")
	transfers.New(transferDB, opts.LogsLimit).
		Mount(router, "/transfers")
	accounts.New(transferDB, opts.FaucetLimit).
		Mount(router, "/accounts")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	enableReqLogger := opts.EnableReqLogger
	if enableReqLogger == nil {
		enableReqLogger = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enableReqLogger, opts.SlowQueriesThreshold, opts.Log5xxErrors))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	)(handler)

	return handler.ServeHTTP
}
