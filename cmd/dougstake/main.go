// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dougstake/dougstake/api"
	"github.com/dougstake/dougstake/clock"
	"github.com/dougstake/dougstake/log"
	"github.com/dougstake/dougstake/lvldb"
	"github.com/dougstake/dougstake/metrics"
	"github.com/dougstake/dougstake/reward"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/staker"
	"github.com/dougstake/dougstake/state"
	"github.com/dougstake/dougstake/transferdb"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	nodeFlags := joinFlags(configFlags, apiFlags, logFlags, []cli.Flag{
		dataDirFlag,
		cacheFlag,
		ntpServerFlag,
		skipClockCheckFlag,
	})
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Dougstake",
		Usage:     "Time-locked staking ledger",
		Copyright: "2025 The VeChainThor developers",
		Flags:     nodeFlags,
		Action:    defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "run an in-memory ledger with a funded reward vault and a faucet, for test & dev",
				Flags: joinFlags(configFlags, apiFlags, logFlags, []cli.Flag{
					dataDirFlag,
					cacheFlag,
					persistFlag,
					rewardFundsFlag,
					faucetLimitFlag,
				}),
				Action: soloAction,
			},
			{
				Name:   "audit",
				Usage:  "check the stored records against the vault counters",
				Flags:  joinFlags(configFlags, logFlags, []cli.Flag{dataDirFlag}),
				Action: auditAction,
			},
			{
				Name:   "reward",
				Usage:  "print the reward for an amount locked over a duration",
				Flags:  joinFlags(configFlags, []cli.Flag{amountFlag, durationFlag}),
				Action: rewardAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ledger bundles the storage and the staker built on it.
type ledger struct {
	instanceDir string
	store       *lvldb.LevelDB
	repo        *state.Repository
	transferDB  *transferdb.TransferDB
	staker      *staker.Staker
}

func openLedger(ctx *cli.Context, cfg stake.Config, persist bool) (_ *ledger, err error) {
	l := &ledger{instanceDir: "Memory"}
	defer func() {
		if err != nil {
			l.Close()
		}
	}()

	if persist {
		if l.instanceDir, err = makeInstanceDir(ctx, cfg); err != nil {
			return nil, err
		}
		if l.store, err = openStore(l.instanceDir); err != nil {
			return nil, err
		}
		if l.transferDB, err = openTransferDB(l.instanceDir); err != nil {
			return nil, err
		}
	} else {
		if l.store, err = lvldb.NewMem(); err != nil {
			return nil, errors.Wrap(err, "open stake database")
		}
		if l.transferDB, err = transferdb.NewMem(); err != nil {
			return nil, errors.Wrap(err, "open transfer database")
		}
	}

	cacheSize := cacheFlag.Value
	if ctx.IsSet(cacheFlag.Name) {
		cacheSize = ctx.Int(cacheFlag.Name)
	}
	if l.repo, err = state.New(l.store, cacheSize); err != nil {
		return nil, err
	}
	if l.staker, err = staker.New(l.repo, l.transferDB, clock.System{}, cfg); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *ledger) Close() {
	if l.transferDB != nil {
		logger.Info("closing transfer database...")
		l.transferDB.Close()
	}
	if l.store != nil {
		logger.Info("closing stake database...")
		if err := l.store.Close(); err != nil {
			logger.Warn("failed to close stake database", "err", err)
		}
	}
}

func apiOptions(ctx *cli.Context, faucetLimit uint64) api.Options {
	enableReqLogger := &atomic.Bool{}
	enableReqLogger.Store(ctx.Bool(enableAPILogsFlag.Name))
	return api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      enableReqLogger,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
		FaucetLimit:          faucetLimit,
	}
}

// run serves the API, and metrics when enabled, until an exit signal arrives.
func run(ctx *cli.Context, cfg stake.Config, l *ledger, faucetLimit uint64) error {
	g, exitCtx := errgroup.WithContext(handleExitSignal())

	opts := apiOptions(ctx, faucetLimit)
	apiURL, err := serve(exitCtx, g, "API", ctx.String(apiAddrFlag.Name), api.New(l.staker, l.transferDB, opts))
	if err != nil {
		return err
	}

	var metricsURL string
	if opts.EnableMetrics {
		if metricsURL, err = serve(exitCtx, g, "metrics", ctx.String(metricsAddrFlag.Name), metricsHandler()); err != nil {
			// stops the API server before the stores are closed
			g.Go(func() error { return err })
			return g.Wait()
		}
	}
	g.Go(func() error { return reportCacheStats(exitCtx, l.repo, time.Minute) })

	printStartupMessage(cfg, l.instanceDir, l.staker, apiURL, metricsURL)
	return g.Wait()
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	checkClock(ctx)

	l, err := openLedger(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer l.Close()

	info, err := l.staker.VaultInfo()
	if err != nil {
		return err
	}
	if !info.IsInitialized {
		logger.Warn("vault is not initialized, actions are rejected until POST /vault/initialize")
	}
	return run(ctx, cfg, l, 0)
}

func soloAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	l, err := openLedger(ctx, cfg, ctx.Bool(persistFlag.Name))
	if err != nil {
		return err
	}
	defer l.Close()

	if err := initSolo(l, ctx.Uint64(rewardFundsFlag.Name)); err != nil {
		return err
	}
	return run(ctx, cfg, l, ctx.Uint64(faucetLimitFlag.Name))
}

// initSolo funds the reward vault and initializes the vault counters on first start.
func initSolo(l *ledger, rewardFunds uint64) error {
	info, err := l.staker.VaultInfo()
	if err != nil {
		return err
	}
	if info.IsInitialized {
		return nil
	}
	if err := l.transferDB.Mint(l.staker.RewardVault(), rewardFunds); err != nil {
		return errors.WithMessage(err, "fund reward vault")
	}
	if err := l.staker.Initialize(); err != nil {
		return err
	}
	logger.Info("solo vault ready", "rewardVault", l.staker.RewardVault(), "funds", rewardFunds)
	return nil
}

func auditAction(ctx *cli.Context) error {
	initLogger(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	l, err := openLedger(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer l.Close()

	report, err := l.staker.Audit()
	if report != nil {
		fmt.Printf(`Audit of %v
    Records        [ %v ]
    Active         [ %v ]
    Active sum     [ %v ]
    Value locked   [ %v ]
    Lifetime value [ %v ]
    Initialized    [ %v ]
`,
			l.instanceDir,
			report.Records,
			report.Active,
			report.ActiveSum,
			report.Info.TotalValueLocked,
			report.Info.LifetimeValueLocked,
			report.Info.IsInitialized,
		)
	}
	if err != nil {
		return errors.WithMessage(err, "audit failed")
	}
	fmt.Println("OK")
	return nil
}

func rewardAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	days := ctx.Uint64(durationFlag.Name)
	if days > stake.DurationMax {
		return fmt.Errorf("duration exceeds %v days", stake.DurationMax)
	}
	amount := ctx.Uint64(amountFlag.Name)
	model := reward.New(cfg.APRFactor)
	fmt.Println(strings.Join([]string{
		fmt.Sprintf("amount:     %v", amount),
		fmt.Sprintf("duration:   %v days", days),
		fmt.Sprintf("multiplier: %v", model.Multiplier(days)),
		fmt.Sprintf("rewards:    %v", model.Rewards(amount, days)),
	}, "\n"))
	return nil
}
