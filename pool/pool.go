// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool holds the pool and position records and the accrual engine
// driving them. Nothing here touches storage or balances.
package pool

import (
	"github.com/vechain/rewardpool/custody"
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/reverts"
	"github.com/vechain/rewardpool/thor"
)

var (
	poolBucket     = kv.Bucket("p")
	positionBucket = kv.Bucket("u")

	rewardSeed    = []byte("reward")
	stakeSeed     = []byte("stake")
	authoritySeed = []byte("authority")
)

// Key is the store key of the pool of asset.
func Key(asset thor.Address) []byte {
	return poolBucket.Key(asset.Bytes())
}

// Range covers the keys of all pools.
func Range() kv.Range {
	return poolBucket.Range()
}

// PositionKey is the store key of the position of user in the pool of asset.
func PositionKey(asset, user thor.Address) []byte {
	return positionBucket.Key(asset.Bytes(), user.Bytes())
}

// PositionRange covers the keys of all positions in the pool of asset.
func PositionRange(asset thor.Address) kv.Range {
	return positionBucket.Range(asset.Bytes())
}

// RewardAccount is the custody account holding the undistributed reward of the pool of asset.
func RewardAccount(asset thor.Address) thor.Address {
	return thor.DeriveAddress(rewardSeed, asset.Bytes())
}

// StakeAccount is the custody account holding the principal staked in the pool of asset.
func StakeAccount(asset thor.Address) thor.Address {
	return thor.DeriveAddress(stakeSeed, asset.Bytes())
}

// Authority is the capability controlling both custody accounts of the pool of asset.
func Authority(asset thor.Address) custody.Authority {
	return custody.Derive(authoritySeed, asset.Bytes())
}

// Pool is the accrual record of an asset.
type Pool struct {
	Owner                thor.Address
	Asset                thor.Address
	PeriodStart          uint64
	PeriodEnd            uint64
	TotalReward          uint64
	RewardPerSecond      uint64
	TotalStaked          uint64
	RewardPerTokenStored uint64 // scaled by Precision
	LastUpdated          uint64
}

// Open creates the pool of asset, emitting totalReward evenly from now until periodEnd.
// The remainder of the division is never emitted.
func Open(owner, asset thor.Address, periodEnd, totalReward, now uint64) (*Pool, error) {
	if periodEnd <= now {
		return nil, reverts.Newf(reverts.InvalidPeriod, "period end %d is not after %d", periodEnd, now)
	}
	if totalReward == 0 {
		return nil, reverts.New(reverts.InvalidAmount, "total reward is zero")
	}
	return &Pool{
		Owner:           owner,
		Asset:           asset,
		PeriodStart:     now,
		PeriodEnd:       periodEnd,
		TotalReward:     totalReward,
		RewardPerSecond: totalReward / (periodEnd - now),
		LastUpdated:     now,
	}, nil
}

// RewardAccount is the custody account holding the undistributed reward.
func (p *Pool) RewardAccount() thor.Address { return RewardAccount(p.Asset) }

// StakeAccount is the custody account holding the staked principal.
func (p *Pool) StakeAccount() thor.Address { return StakeAccount(p.Asset) }

// Authority is the derived authority controlling both pool accounts.
func (p *Pool) Authority() custody.Authority { return Authority(p.Asset) }

// Ended reports whether deposits are closed at now. A deposit at PeriodEnd is still accepted.
func (p *Pool) Ended(now uint64) bool { return now > p.PeriodEnd }

// Dust is the part of the total reward the emission rate can never reach.
func (p *Pool) Dust() uint64 {
	return p.TotalReward - p.RewardPerSecond*(p.PeriodEnd-p.PeriodStart)
}

// Advance brings the accumulator up to now. Accrual stops at the end of the period,
// and time passed with nothing staked emits nothing.
// On error the pool is left untouched.
func (p *Pool) Advance(now uint64) error {
	if now <= p.LastUpdated {
		return nil
	}
	horizon := min(now, p.PeriodEnd)
	if p.TotalStaked > 0 && horizon > p.LastUpdated {
		delta, err := accrual(p.RewardPerSecond, horizon-p.LastUpdated, p.TotalStaked)
		if err != nil {
			return err
		}
		stored, err := add(p.RewardPerTokenStored, delta)
		if err != nil {
			return err
		}
		p.RewardPerTokenStored = stored
	}
	p.LastUpdated = now
	return nil
}

// Position is the stake of one user in a pool.
type Position struct {
	User          thor.Address
	StakedAmount  uint64
	RewardDebt    uint64 // entitlement already accounted for, in monetary units
	RewardClaimed uint64
	LastUpdated   uint64
}

// NewPosition returns the empty position of user.
func NewPosition(user thor.Address) *Position {
	return &Position{User: user}
}

// pending is the reward earned by pos at the current accumulator value of p.
func pending(p *Pool, pos *Position) (uint64, error) {
	earned, err := entitlement(pos.StakedAmount, p.RewardPerTokenStored)
	if err != nil {
		return 0, err
	}
	return sub(earned, pos.RewardDebt)
}

// Pending returns what settling pos at now would pay, without changing either record.
func Pending(p *Pool, pos *Position, now uint64) (uint64, error) {
	cp := *p
	if err := cp.Advance(now); err != nil {
		return 0, err
	}
	return pending(&cp, pos)
}

// Settle advances p to now, adds amount to the stake of pos and returns the reward
// pos had earned before the deposit. The caller pays it out.
// Both records are updated together or not at all.
func Settle(p *Pool, pos *Position, amount, now uint64) (uint64, error) {
	np, npos := *p, *pos

	if err := np.Advance(now); err != nil {
		return 0, err
	}
	reward, err := pending(&np, &npos)
	if err != nil {
		return 0, err
	}

	if npos.StakedAmount, err = add(npos.StakedAmount, amount); err != nil {
		return 0, err
	}
	if np.TotalStaked, err = add(np.TotalStaked, amount); err != nil {
		return 0, err
	}
	if npos.RewardDebt, err = entitlement(npos.StakedAmount, np.RewardPerTokenStored); err != nil {
		return 0, err
	}
	if npos.RewardClaimed, err = add(npos.RewardClaimed, reward); err != nil {
		return 0, err
	}
	npos.LastUpdated = now

	*p, *pos = np, npos
	return reward, nil
}
