// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package receiptdb

import (
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/thor"
)

// Deposit is a recorded deposit receipt.
type Deposit struct {
	Seq            uint64
	Asset          thor.Address
	User           thor.Address
	Amount         uint64
	Reward         uint64
	Staked         uint64
	RewardPerToken uint64
	Time           uint64
}

func newDeposit(r *ledger.Receipt) *Deposit {
	return &Deposit{
		Asset:          r.Asset,
		User:           r.User,
		Amount:         r.Amount,
		Reward:         r.Reward,
		Staked:         r.Staked,
		RewardPerToken: r.RewardPerToken,
		Time:           r.Time,
	}
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range selects deposits by time, both ends included. A nil To has no upper bound.
type Range struct {
	From uint64
	To   *uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects deposits. Nil fields match everything.
type Filter struct {
	Asset   *thor.Address
	User    *thor.Address
	Range   *Range
	Order   Order
	Options *Options
}
