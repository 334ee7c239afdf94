// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	metrics = noop{}
	assert.True(t, NoOp())
	assert.Nil(t, HTTPHandler())

	// discarded meters accept labels they were not created with
	Counter("count1").Add(1)
	CounterVec("countVec1", []string{"asset"}).AddWithLabel(1, map[string]string{"unknown": "label"})
	GaugeVec("gaugeVec1", []string{"asset"}).SetWithLabel(1, map[string]string{"unknown": "label"})
	HistogramVec("hist1", []string{"op"}, nil).ObserveWithLabels(1, map[string]string{"unknown": "label"})
}

func TestLazyLoadBindsOnFirstUse(t *testing.T) {
	metrics = noop{}
	lazy := LazyLoadCounter("lazy_count")

	InitializePrometheusMetrics()
	defer func() { metrics = noop{} }()
	assert.False(t, NoOp())

	_, isNoop := lazy().(noop)
	assert.False(t, isNoop)
	assert.Same(t, lazy(), lazy())
}

func TestSaturate(t *testing.T) {
	assert.Equal(t, int64(7), Saturate(7))
	assert.Equal(t, int64(math.MaxInt64), Saturate(math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), Saturate(math.MaxUint64))
}
