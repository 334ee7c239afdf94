// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/receiptdb"
)

const ntpSyncInterval = 10 * time.Minute

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
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

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.rewardpool")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.rewardpool")
		default:
			return filepath.Join(home, ".org.vechain.rewardpool")
		}
	}
	return ""
}

// initLogger installs the default handler and returns its level, adjustable at runtime.
func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < log.LegacyLevelCrit || verbosity > log.LegacyLevelTrace {
		return nil, fmt.Errorf("invalid verbosity %d", verbosity)
	}
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(verbosity))
	log.SetDefault(log.NewHandler(os.Stderr, level, ctx.Bool(jsonLogsFlag.Name)))
	return level, nil
}

func openDB(ctx *cli.Context, dataDir string) (*lvldb.LevelDB, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	db, err := lvldb.New(filepath.Join(dataDir, "ledger.db"), lvldb.Options{
		CacheSize:              ctx.Int(cacheFlag.Name),
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "open ledger database in [%v]", dataDir)
	}
	return db, nil
}

func openReceiptDB(dataDir string) (*receiptdb.ReceiptDB, error) {
	db, err := receiptdb.New(filepath.Join(dataDir, "receipts.db"))
	if err != nil {
		return nil, errors.WithMessagef(err, "open receipt database in [%v]", dataDir)
	}
	return db, nil
}

// exitContext is canceled on the first interrupt or terminate signal.
// A second signal kills the process.
func exitContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()

		<-exitSignalCh
		fatal("forced exit")
	}()
	return ctx
}

// syncClock corrects clk against server until ctx is done.
func syncClock(ctx context.Context, clk *clock.System, server string) error {
	ticker := time.NewTicker(ntpSyncInterval)
	defer ticker.Stop()
	for {
		if err := clk.SyncNTP(server); err != nil {
			log.Debug("failed to sync clock", "server", server, "err", err)
		} else {
			log.Debug("clock synced", "server", server, "offset", common.PrettyDuration(clk.Offset()))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printStartupMessage(name, dataDir, apiURL, metricsURL string, now uint64) {
	if metricsURL == "" {
		metricsURL = "disabled"
	}
	fmt.Printf(`Starting %v
    Genesis      [ %v ]
    Clock        [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		"RewardPool/"+fullVersion(),
		name,
		time.Unix(int64(now), 0),
		dataDir,
		apiURL,
		metricsURL)
}
