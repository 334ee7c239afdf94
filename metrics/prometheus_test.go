// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"io"
	"math/rand/v2"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	prom, ok := metrics.(*prometheusMetrics)
	require.True(t, ok)
	families, err := prom.registry.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}
	return byName
}

func TestPromMetrics(t *testing.T) {
	metrics = noop{}
	InitializePrometheusMetrics()
	defer func() { metrics = noop{} }()

	count1 := Counter("count1")
	count1.Add(1)
	randCount2 := rand.N(100) + 1
	for range randCount2 {
		Counter("count2").Add(1)
	}

	histTotal := 0
	for i := range rand.N(100) + 2 {
		HistogramVec("hist", []string{"zeroOrOne"}, nil).
			ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		histTotal += i
	}

	countVec := CounterVec("countVec", []string{"zeroOrOne"})
	gaugeVec := GaugeVec("gaugeVec", []string{"zeroOrOne"})
	total := 0
	for i := range rand.N(100) + 2 {
		countVec.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		gaugeVec.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		total += i
	}
	gaugeVec.SetWithLabel(7, map[string]string{"zeroOrOne": "set"})

	families := gather(t)
	require.Equal(t, float64(1), families["rewardpool_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(randCount2), families["rewardpool_count2"].Metric[0].GetCounter().GetValue())

	hist := families["rewardpool_hist"].Metric
	require.Equal(t, float64(histTotal), hist[0].GetHistogram().GetSampleSum()+hist[1].GetHistogram().GetSampleSum())

	counts := families["rewardpool_countVec"].Metric
	require.Equal(t, float64(total), counts[0].GetCounter().GetValue()+counts[1].GetCounter().GetValue())

	gauges := families["rewardpool_gaugeVec"].Metric
	require.Len(t, gauges, 3)
	var sum float64
	for _, g := range gauges {
		sum += g.GetGauge().GetValue()
	}
	require.Equal(t, float64(total+7), sum)

	srv := httptest.NewServer(HTTPHandler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "rewardpool_count1 1")
}
