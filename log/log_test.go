// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextFollowsDefault(t *testing.T) {
	// created before a handler is installed, like package level loggers
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(LevelInfo)
	SetDefault(NewHandler(&buf, &level, true))
	defer SetDefault(slog.NewTextHandler(&bytes.Buffer{}, nil))

	logger.Info("deposit", "amount", 10)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "deposit", record["msg"])
	assert.Equal(t, "test", record["pkg"])
	assert.Equal(t, float64(10), record["amount"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(LevelWarn)
	SetDefault(NewHandler(&buf, &level, true))
	defer SetDefault(slog.NewTextHandler(&bytes.Buffer{}, nil))

	logger := WithContext("pkg", "test")
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	level.Set(LevelDebug)
	logger.Debug("shown")
	assert.NotZero(t, buf.Len())
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelError, FromLegacyLevel(LegacyLevelError))
	assert.Equal(t, LevelTrace, FromLegacyLevel(LegacyLevelTrace))
}

func TestTerminalLevelChanges(t *testing.T) {
	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(LevelInfo)
	logger := NewLogger(NewHandler(&buf, &level, false))

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	level.Set(LevelTrace)
	logger.Trace("shown", "asset", "0x01")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "asset=0x01")
}

func TestWithGroupThroughRoot(t *testing.T) {
	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(LevelInfo)
	SetDefault(NewHandler(&buf, &level, true))
	defer SetDefault(slog.NewTextHandler(&bytes.Buffer{}, nil))

	grouped := slog.New(Root().Handler()).WithGroup("pool").With("asset", "0x01")
	require.NotPanics(t, func() { grouped.Info("opened", "reward", 100) })

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "opened", record["msg"])
	assert.Equal(t, "0x01", record["pool.asset"])
	assert.Equal(t, float64(100), record["pool.reward"])
}
