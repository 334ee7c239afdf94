// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/admin/health"
	"github.com/vechain/rewardpool/api/admin/loglevel"
	"github.com/vechain/rewardpool/api/custody"
	"github.com/vechain/rewardpool/api/deposits"
	"github.com/vechain/rewardpool/api/pools"
	"github.com/vechain/rewardpool/api/protocol"
	"github.com/vechain/rewardpool/api/subscriptions"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/receiptdb"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
	// ClockOffset reports the correction applied to the ledger clock, nil if none.
	ClockOffset func() time.Duration
	// Receipts serves the deposit history, nil disables it.
	Receipts  *receiptdb.ReceiptDB
	LogsLimit uint64
}

const defaultLogsLimit = 1000

// New return api router. The returned function closes the websocket subscriptions.
func New(l *ledger.Ledger, logLevel *slog.LevelVar, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	protocol.New(l).
		Mount(router, "/protocol")
	pools.New(l).
		Mount(router, "/pools")
	custody.New(l).
		Mount(router, "/custody")
	loglevel.New(logLevel).
		Mount(router, "/admin/loglevel")
	health.New(l, opts.ClockOffset).
		Mount(router, "/admin/health")
	if opts.Receipts != nil {
		limit := opts.LogsLimit
		if limit == 0 {
			limit = defaultLogsLimit
		}
		deposits.New(opts.Receipts, limit).
			Mount(router, "/logs/deposits")
	}
	subs := subscriptions.New(l, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handle hijacked conns, which need to be closed
}
