// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/thor"
)

// DepositMessage is pushed to subscribers for every matching deposit.
type DepositMessage struct {
	User           thor.Address `json:"user"`
	Asset          thor.Address `json:"asset"`
	Amount         uint64       `json:"amount"`
	Reward         uint64       `json:"reward"`
	Staked         uint64       `json:"staked"`
	RewardPerToken uint64       `json:"rewardPerToken"`
	Time           uint64       `json:"time"`
}

func convertReceipt(r *ledger.Receipt) *DepositMessage {
	return &DepositMessage{
		User:           r.User,
		Asset:          r.Asset,
		Amount:         r.Amount,
		Reward:         r.Reward,
		Staked:         r.Staked,
		RewardPerToken: r.RewardPerToken,
		Time:           r.Time,
	}
}
