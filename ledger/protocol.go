// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/thor"
)

const (
	// ProtocolFee is the fee rate recorded at bootstrap, over FeePrecision.
	ProtocolFee uint64 = 50_000
	// FeePrecision is the denominator of fee rates.
	FeePrecision uint64 = 1_000_000
)

var protocolKey = kv.Bucket("g").Key([]byte("protocol"))

// Protocol is the global configuration, written once.
type Protocol struct {
	Owner        thor.Address
	FeeRecipient thor.Address
	Fee          uint64
	Asset        thor.Address // default asset of new pools
}
