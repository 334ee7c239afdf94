// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package receiptdb

import (
	"strings"

	"github.com/vechain/rewardpool/metrics"
)

var (
	metricWrittenCount      = metrics.LazyLoadCounter("receiptdb_written_count")
	metricQueryParameters   = metrics.LazyLoadCounterVec("receiptdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter = metrics.LazyLoadCounterVec("receiptdb_query_order", []string{"order"})
	metricLimitBucket       = metrics.LazyLoadHistogramVec("receiptdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleFilter(filter *Filter) {
	paramsUsed := make([]string, 0, 3)
	if filter.Asset != nil {
		paramsUsed = append(paramsUsed, "asset")
	}
	if filter.User != nil {
		paramsUsed = append(paramsUsed, "user")
	}
	if filter.Range != nil {
		paramsUsed = append(paramsUsed, "range")
	}
	if len(paramsUsed) > 0 {
		metricQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})
	}

	order := string(filter.Order)
	if order == "" {
		order = string(ASC)
	}
	metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": order})

	if filter.Options != nil {
		metricLimitBucket().ObserveWithLabels(int64(filter.Options.Limit), map[string]string{"type": "deposit"})
	}
}
