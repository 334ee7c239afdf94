// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpserver runs the HTTP listeners of the node: the ledger API and the metrics endpoint.
package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
)

// maxBodySize caps request bodies, every ledger request is a small JSON object.
const maxBodySize = 64 * 1024

var logger = log.WithContext("pkg", "httpserver")

// StartAPIServer serves handler on addr. It returns the portal URL and a function stopping the server.
func StartAPIServer(addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	stop := serve(listener, requestBodyLimit(handler))
	return "http://" + listener.Addr().String() + "/", stop, nil
}

// StartMetricsServer exposes the prometheus meters under /metrics.
func StartMetricsServer(addr string) (string, func(), error) {
	h := metrics.HTTPHandler()
	if h == nil {
		return "", nil, errors.New("metrics not initialized")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(h)
	stop := serve(listener, handlers.CompressHandler(router))
	return "http://" + listener.Addr().String() + "/metrics", stop, nil
}

// serve runs handler on listener until the returned function is called.
func serve(listener net.Listener, handler http.Handler) func() {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	var wg sync.WaitGroup
	wg.Go(func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("http server stopped", "addr", listener.Addr(), "err", err)
		}
	})
	return func() {
		srv.Close()
		wg.Wait()
	}
}

func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		h.ServeHTTP(w, r)
	})
}
