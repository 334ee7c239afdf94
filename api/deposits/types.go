// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"github.com/vechain/rewardpool/receiptdb"
	"github.com/vechain/rewardpool/thor"
)

type Range struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type Filter struct {
	Asset   *thor.Address   `json:"asset,omitempty"`
	User    *thor.Address   `json:"user,omitempty"`
	Range   *Range          `json:"range,omitempty"`
	Options *Options        `json:"options,omitempty"`
	Order   receiptdb.Order `json:"order,omitempty"`
}

type FilteredDeposit struct {
	Seq            uint64       `json:"seq"`
	Asset          thor.Address `json:"asset"`
	User           thor.Address `json:"user"`
	Amount         uint64       `json:"amount"`
	Reward         uint64       `json:"reward"`
	Staked         uint64       `json:"staked"`
	RewardPerToken uint64       `json:"rewardPerToken"`
	Time           uint64       `json:"time"`
}

func convertDeposit(d *receiptdb.Deposit) *FilteredDeposit {
	return &FilteredDeposit{
		Seq:            d.Seq,
		Asset:          d.Asset,
		User:           d.User,
		Amount:         d.Amount,
		Reward:         d.Reward,
		Staked:         d.Staked,
		RewardPerToken: d.RewardPerToken,
		Time:           d.Time,
	}
}

func convertRange(r *Range) *receiptdb.Range {
	if r == nil || (r.From == nil && r.To == nil) {
		return nil
	}
	rng := receiptdb.Range{To: r.To}
	if r.From != nil {
		rng.From = *r.From
	}
	return &rng
}
