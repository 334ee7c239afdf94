// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, level *slog.LevelVar, method string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	router := mux.NewRouter()
	New(level).Mount(router, "/admin/loglevel")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, "/admin/loglevel", bytes.NewReader(payload)))
	return rr
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		body     any
		status   int
		level    string
		errorMsg string
	}{
		{"get current level", http.MethodGet, nil, http.StatusOK, "INFO", ""},
		{"set debug", http.MethodPost, Request{"debug"}, http.StatusOK, "DEBUG", ""},
		{"set trace", http.MethodPost, Request{"trace"}, http.StatusOK, "TRACE", ""},
		{"name is case insensitive", http.MethodPost, Request{"WARN"}, http.StatusOK, "WARN", ""},
		{"verbosity value", http.MethodPost, Request{"0"}, http.StatusOK, "CRIT", ""},
		{"verbosity out of range", http.MethodPost, Request{"9"}, http.StatusBadRequest, "", "Invalid verbosity level"},
		{"unknown level", http.MethodPost, Request{"loud"}, http.StatusBadRequest, "", "Invalid verbosity level"},
		{
			"unknown field", http.MethodPost, map[string]string{"verbosity": "debug"}, http.StatusBadRequest, "",
			"Invalid request body: json: unknown field \"verbosity\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var level slog.LevelVar
			level.Set(slog.LevelInfo)

			rr := serve(t, &level, tt.method, tt.body)
			require.Equal(t, tt.status, rr.Code)

			if tt.errorMsg != "" {
				assert.Equal(t, tt.errorMsg, strings.TrimSpace(rr.Body.String()))
				assert.Equal(t, slog.LevelInfo, level.Level())
				return
			}
			var res Response
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
			assert.Equal(t, tt.level, res.CurrentLevel)
		})
	}
}
