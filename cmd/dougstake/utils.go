// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/dougstake/dougstake/clock"
	"github.com/dougstake/dougstake/log"
	"github.com/dougstake/dougstake/lvldb"
	"github.com/dougstake/dougstake/metrics"
	"github.com/dougstake/dougstake/stake"
	"github.com/dougstake/dougstake/staker"
	"github.com/dougstake/dougstake/state"
	"github.com/dougstake/dougstake/transferdb"
)

// clockTolerance is the host clock drift tolerated at startup.
const clockTolerance = 2 * time.Second

func initLogger(ctx *cli.Context) {
	level := log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name)))

	var lvl slog.LevelVar
	lvl.Set(level)

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, &lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, &lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "io.dougstake")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "io.dougstake")
		default:
			return filepath.Join(home, ".io.dougstake")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// makeInstanceDir returns the directory holding the databases of cfg. Ledgers
// built from different configs never share storage.
func makeInstanceDir(ctx *cli.Context, cfg stake.Config) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	id := stake.Blake2b([]byte(cfg.String()))
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", id.Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openStore(instanceDir string) (*lvldb.LevelDB, error) {
	dir := filepath.Join(instanceDir, "stake.db")
	store, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open stake database [%v]", dir)
	}
	return store, nil
}

func openTransferDB(instanceDir string) (*transferdb.TransferDB, error) {
	dir := filepath.Join(instanceDir, "transfers.db")
	db, err := transferdb.New(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open transfer database [%v]", dir)
	}
	return db, nil
}

// checkClock warns when the host clock drifts from the time server. Lock
// deadlines are read from the host clock.
func checkClock(ctx *cli.Context) {
	if ctx.Bool(skipClockCheckFlag.Name) {
		return
	}
	server := ctx.String(ntpServerFlag.Name)
	offset, ok, err := clock.CheckOffset(clock.NTPQuery, server, clockTolerance)
	switch {
	case err != nil:
		logger.Warn("failed to check host clock", "server", server, "err", err)
	case !ok:
		logger.Warn("host clock drifts from time server", "server", server, "offset", offset)
	default:
		logger.Debug("host clock checked", "server", server, "offset", offset)
	}
}

// handleExitSignal returns a context canceled on SIGINT or SIGTERM.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(exitSignalCh)

		select {
		case sig := <-exitSignalCh:
			logger.Info("exit signal received", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}

// serve runs handler on addr inside g, and shuts it down once ctx is done.
func serve(ctx context.Context, g *errgroup.Group, name, addr string, handler http.Handler) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.Wrapf(err, "listen %v addr [%v]", name, addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "%v server", name)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info(fmt.Sprintf("stopping %v server...", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return "http://" + listener.Addr().String() + "/", nil
}

func metricsHandler() http.Handler {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}

// reportCacheStats logs the record cache hit rate every interval until ctx is done.
func reportCacheStats(ctx context.Context, repo *state.Repository, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logStats := func(msg string) {
		stats := repo.CacheStats()
		logger.Debug(msg, "hits", stats.Hits(), "misses", stats.Misses(), "hitrate", fmt.Sprintf("%.3f", stats.HitRate()))
	}
	for {
		select {
		case <-ctx.Done():
			logStats("record cache final stats")
			return nil
		case <-ticker.C:
			logStats("record cache stats")
		}
	}
}

func printStartupMessage(cfg stake.Config, instanceDir string, stk *staker.Staker, apiURL, metricsURL string) {
	if metricsURL == "" {
		metricsURL = "Disabled"
	} else {
		metricsURL += "metrics"
	}
	fmt.Printf(`Starting %v
    Config       [ %v ]
    Reward vault [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		"Dougstake "+fullVersion(),
		cfg,
		stk.RewardVault(),
		instanceDir,
		apiURL,
		metricsURL,
	)
}
