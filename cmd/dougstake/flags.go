// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dougstake/dougstake/clock"
	"github.com/dougstake/dougstake/log"
)

var (
	variantFlag = cli.StringFlag{
		Name:  "variant",
		Value: "classic",
		Usage: "preset the ledger rules are built from (classic|pinned)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml config file, applied over the variant preset",
	}
	aprFactorFlag = cli.Float64Flag{
		Name:  "apr-factor",
		Usage: "slope of the reward line, overrides the config file",
	}
	secondsPerDayFlag = cli.Uint64Flag{
		Name:  "seconds-per-day",
		Usage: "length of a lock day in seconds, overrides the config file",
	}
	tokenMintFlag = cli.StringFlag{
		Name:  "token-mint",
		Usage: "mint accepted by stake and top-up, overrides the config file",
	}
	topUpFlag = cli.BoolFlag{
		Name:  "top-up",
		Usage: "enable the top-up action, overrides the config file",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 4096,
		Usage: "number of stake records kept in memory",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8680",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of transfers returned by /transfers API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with duration (in milliseconds) greater than this threshold will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log all API requests answered with a 5xx status",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: clock.DefaultNTPServer,
		Usage: "time server the host clock is checked against at startup",
	}
	skipClockCheckFlag = cli.BoolFlag{
		Name:  "skip-clock-check",
		Usage: "skip the host clock drift check at startup",
	}

	// solo mode only flags
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "ledger data storage option, if set data will be saved to disk",
	}
	rewardFundsFlag = cli.Uint64Flag{
		Name:  "reward-funds",
		Value: 1_000_000_000_000_000,
		Usage: "base units minted to the reward vault when the vault is initialized",
	}
	faucetLimitFlag = cli.Uint64Flag{
		Name:  "faucet-limit",
		Value: 1_000_000_000_000,
		Usage: "maximum base units the faucet mints per request",
	}

	// reward command flags
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Value: 100_000_000,
		Usage: "principal in base units",
	}
	durationFlag = cli.Uint64Flag{
		Name:  "duration",
		Value: 365,
		Usage: "lock duration in days",
	}
)

var configFlags = []cli.Flag{
	variantFlag,
	configFlag,
	aprFactorFlag,
	secondsPerDayFlag,
	tokenMintFlag,
	topUpFlag,
}

var apiFlags = []cli.Flag{
	apiAddrFlag,
	apiCorsFlag,
	apiLogsLimitFlag,
	enableAPILogsFlag,
	apiSlowQueriesThresholdFlag,
	apiLog5xxErrorsFlag,
	pprofFlag,
	enableMetricsFlag,
	metricsAddrFlag,
}

var logFlags = []cli.Flag{
	verbosityFlag,
	jsonLogsFlag,
}

func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}
