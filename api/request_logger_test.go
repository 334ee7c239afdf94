// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/log"
)

func TestRequestLoggerHandler(t *testing.T) {
	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(log.LevelInfo)
	logger := log.NewLogger(log.NewHandler(&buf, &level, true))

	var seen []byte
	handler := RequestLoggerHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}), logger)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/pools", bytes.NewBufferString("test body")))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "test body", string(seen), "body must still reach the wrapped handler")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "API Request", record["msg"])
	assert.Equal(t, "/pools", record["URI"])
	assert.Equal(t, "POST", record["Method"])
	assert.Equal(t, "test body", record["Body"])
	assert.Equal(t, float64(http.StatusAccepted), record["Status"])
	assert.Contains(t, record, "elapsed")
}

func TestRequestLoggerTruncatesBody(t *testing.T) {
	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(log.LevelInfo)
	logger := log.NewLogger(log.NewHandler(&buf, &level, true))

	var seen []byte
	handler := RequestLoggerHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = io.ReadAll(r.Body)
	}), logger)

	large := bytes.Repeat([]byte("a"), loggedBodySize*2)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/pools", bytes.NewReader(large)))

	assert.Len(t, seen, len(large))
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Len(t, record["Body"], loggedBodySize)
	assert.Equal(t, float64(http.StatusOK), record["Status"])
}
