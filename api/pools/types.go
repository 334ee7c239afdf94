// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/pool"
	"github.com/vechain/rewardpool/thor"
)

// OpenRequest opens a pool. A missing asset stands for the canonical asset.
type OpenRequest struct {
	Owner       thor.Address  `json:"owner"`
	Asset       *thor.Address `json:"asset,omitempty"`
	PeriodEnd   uint64        `json:"periodEnd"`
	TotalReward uint64        `json:"totalReward"`
}

type DepositRequest struct {
	User   thor.Address `json:"user"`
	Amount uint64       `json:"amount"`
}

type Pool struct {
	Owner                thor.Address `json:"owner"`
	Asset                thor.Address `json:"asset"`
	PeriodStart          uint64       `json:"periodStart"`
	PeriodEnd            uint64       `json:"periodEnd"`
	TotalReward          uint64       `json:"totalReward"`
	RewardPerSecond      uint64       `json:"rewardPerSecond"`
	TotalStaked          uint64       `json:"totalStaked"`
	RewardPerTokenStored uint64       `json:"rewardPerTokenStored"`
	LastUpdated          uint64       `json:"lastUpdated"`
	RewardAccount        thor.Address `json:"rewardAccount"`
	StakeAccount         thor.Address `json:"stakeAccount"`
}

func convertPool(p *pool.Pool) *Pool {
	return &Pool{
		Owner:                p.Owner,
		Asset:                p.Asset,
		PeriodStart:          p.PeriodStart,
		PeriodEnd:            p.PeriodEnd,
		TotalReward:          p.TotalReward,
		RewardPerSecond:      p.RewardPerSecond,
		TotalStaked:          p.TotalStaked,
		RewardPerTokenStored: p.RewardPerTokenStored,
		LastUpdated:          p.LastUpdated,
		RewardAccount:        p.RewardAccount(),
		StakeAccount:         p.StakeAccount(),
	}
}

type Position struct {
	User          thor.Address `json:"user"`
	StakedAmount  uint64       `json:"stakedAmount"`
	RewardDebt    uint64       `json:"rewardDebt"`
	RewardClaimed uint64       `json:"rewardClaimed"`
	LastUpdated   uint64       `json:"lastUpdated"`
	Pending       *uint64      `json:"pending,omitempty"`
}

func convertPosition(pos *pool.Position) *Position {
	return &Position{
		User:          pos.User,
		StakedAmount:  pos.StakedAmount,
		RewardDebt:    pos.RewardDebt,
		RewardClaimed: pos.RewardClaimed,
		LastUpdated:   pos.LastUpdated,
	}
}

type Receipt struct {
	User           thor.Address `json:"user"`
	Asset          thor.Address `json:"asset"`
	Amount         uint64       `json:"amount"`
	Reward         uint64       `json:"reward"`
	Staked         uint64       `json:"staked"`
	RewardPerToken uint64       `json:"rewardPerToken"`
	Time           uint64       `json:"time"`
}

func convertReceipt(r *ledger.Receipt) *Receipt {
	return &Receipt{
		User:           r.User,
		Asset:          r.Asset,
		Amount:         r.Amount,
		Reward:         r.Reward,
		Staked:         r.Staked,
		RewardPerToken: r.RewardPerToken,
		Time:           r.Time,
	}
}
