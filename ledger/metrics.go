// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/vechain/rewardpool/metrics"

var (
	metricOpenCount    = metrics.LazyLoadCounter("ledger_open_count")
	metricDepositCount = metrics.LazyLoadCounterVec("ledger_deposit_count", []string{"asset"})
	metricRewardPaid   = metrics.LazyLoadCounterVec("ledger_reward_paid", []string{"asset"})
	metricTotalStaked  = metrics.LazyLoadGaugeVec("ledger_total_staked", []string{"asset"})
	metricRevertCount  = metrics.LazyLoadCounterVec("ledger_revert_count", []string{"kind"})
	metricPoolCache    = metrics.LazyLoadGaugeVec("ledger_pool_cache", []string{"event"})
	metricOpDuration   = metrics.LazyLoadHistogramVec("ledger_op_duration_ms", []string{"op"}, metrics.BucketOps)
)
