// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/metrics"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func TestMetricsMiddleware(t *testing.T) {
	ts := newTestServer(t, Options{EnableMetrics: true})
	metricsServer := httptest.NewServer(metrics.HTTPHandler())
	t.Cleanup(metricsServer.Close)

	_, code := httpGet(t, ts.URL+"/pools/"+asset.String())
	assert.Equal(t, http.StatusNotFound, code)
	_, code = httpGet(t, ts.URL+"/pools/"+alice.String())
	assert.Equal(t, http.StatusNotFound, code)
	_, code = httpGet(t, ts.URL+"/pools/0x")
	assert.Equal(t, http.StatusBadRequest, code)

	body, code := httpGet(t, metricsServer.URL)
	require.Equal(t, http.StatusOK, code)

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	m := families["rewardpool_api_request_count"].GetMetric()
	require.Equal(t, 2, len(m), "one entry per route and status")

	var notFound float64
	for _, metric := range m {
		labels := map[string]string{}
		for _, l := range metric.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		assert.Equal(t, "GET /pools/{asset}", labels["name"])
		assert.Equal(t, "GET", labels["method"])
		if labels["code"] == "404" {
			notFound = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), notFound)
	assert.NotNil(t, families["rewardpool_api_duration_ms"])
}
