// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/vechain/rewardpool/log"
)

// loggedBodySize bounds the part of a request body copied into the log.
const loggedBodySize = 1024

// RequestLoggerHandler logs every request once it has been served, with its
// status, its duration and the head of its body.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil && r.Method != http.MethodGet {
			var err error
			if body, err = io.ReadAll(r.Body); err != nil {
				logger.Warn("unexpected body read error", "URI", r.URL.String(), "err", err)
				http.Error(w, "unreadable body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		start := time.Now()
		rw := newMetricsResponseWriter(w)
		handler.ServeHTTP(rw, r)

		logged := body
		if len(logged) > loggedBodySize {
			logged = logged[:loggedBodySize]
		}
		logger.Info("API Request",
			"URI", r.URL.String(),
			"Method", r.Method,
			"Status", rw.statusCode,
			"elapsed", time.Since(start).String(),
			"Body", string(logged),
		)
	})
}
