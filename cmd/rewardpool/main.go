// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/rewardpool/api"
	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/cmd/rewardpool/httpserver"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/receiptdb"
)

var (
	version   = "1.0.0"
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "RewardPool",
		Usage:     "Time weighted staking reward ledger",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			cacheFlag,
			poolCacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			logsLimitFlag,
			verbosityFlag,
			jsonLogsFlag,
			ntpServerFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "solo",
				Usage: "ledger with funded dev accounts for test & dev",
				Flags: []cli.Flag{
					dataDirFlag,
					cacheFlag,
					poolCacheFlag,
					apiAddrFlag,
					apiCorsFlag,
					enableAPILogsFlag,
					logsLimitFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					persistFlag,
				},
				Action: soloAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitCtx := exitContext()
	defer func() { log.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	var gene *Genesis
	if path := ctx.String(genesisFlag.Name); path != "" {
		if gene, err = LoadGenesisFile(path); err != nil {
			return err
		}
	}

	dataDir := ctx.String(dataDirFlag.Name)
	db, err := openDB(ctx, dataDir)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing ledger database..."); db.Close() }()

	receipts, err := openReceiptDB(dataDir)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing receipt database..."); receipts.Close() }()

	clk := clock.NewSystem()
	group, groupCtx := errgroup.WithContext(exitCtx)
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		group.Go(func() error { return syncClock(groupCtx, clk, server) })
	}
	group.Go(func() error {
		return serve(groupCtx, ctx, db, receipts, clk, gene, dataDir, logLevel)
	})
	return group.Wait()
}

func soloAction(ctx *cli.Context) error {
	exitCtx := exitContext()
	defer func() { log.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	var (
		db       *lvldb.LevelDB
		receipts *receiptdb.ReceiptDB
		dataDir  string
	)
	if ctx.Bool(persistFlag.Name) {
		dataDir = ctx.String(dataDirFlag.Name)
		if db, err = openDB(ctx, dataDir); err != nil {
			return err
		}
		receipts, err = openReceiptDB(dataDir)
	} else {
		dataDir = "Memory"
		if db, err = lvldb.NewMem(); err != nil {
			return err
		}
		receipts, err = receiptdb.NewMem()
	}
	defer func() { log.Info("closing ledger database..."); db.Close() }()
	if err != nil {
		return err
	}
	defer func() { log.Info("closing receipt database..."); receipts.Close() }()

	return serve(exitCtx, ctx, db, receipts, clock.NewSystem(), soloGenesis(), dataDir, logLevel)
}

// serve runs the ledger API until ctx is done.
func serve(
	ctx context.Context,
	cliCtx *cli.Context,
	db *lvldb.LevelDB,
	receipts *receiptdb.ReceiptDB,
	clk clock.Clock,
	gene *Genesis,
	dataDir string,
	logLevel *slog.LevelVar,
) error {
	enableMetrics := cliCtx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	l, err := ledger.New(db, clk, ledger.Options{PoolCacheSize: cliCtx.Int(poolCacheFlag.Name)})
	if err != nil {
		return err
	}
	defer l.Close()

	recordCtx, stopRecording := context.WithCancel(context.Background())
	recordDone := make(chan error, 1)
	record := receipts.Track(l)
	go func() { recordDone <- record(recordCtx) }()
	defer func() { stopRecording(); <-recordDone }()

	name := "none"
	if gene != nil {
		name = gene.Name
		applied, err := gene.Apply(l)
		if err != nil {
			return err
		}
		if applied {
			log.Info("genesis applied", "name", gene.Name, "allocations", len(gene.Allocations))
		}
	}

	var metricsURL string
	if enableMetrics {
		url, stop, err := httpserver.StartMetricsServer(cliCtx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); stop() }()
		metricsURL = url
	}

	var clockOffset func() time.Duration
	if sys, ok := clk.(*clock.System); ok {
		clockOffset = sys.Offset
	}
	handler, closeSubs := api.New(l, logLevel, api.Options{
		AllowedOrigins:  cliCtx.String(apiCorsFlag.Name),
		EnableReqLogger: cliCtx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   enableMetrics,
		ClockOffset:     clockOffset,
		Receipts:        receipts,
		LogsLimit:       cliCtx.Uint64(logsLimitFlag.Name),
	})
	defer closeSubs()
	apiURL, stop, err := httpserver.StartAPIServer(cliCtx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); stop() }()

	printStartupMessage(name, dataDir, apiURL, metricsURL, l.Now())

	<-ctx.Done()
	return nil
}
