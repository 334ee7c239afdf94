// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/custody"
	"github.com/vechain/rewardpool/pool"
	"github.com/vechain/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

// Now returns the current time of the ledger clock.
func (l *Ledger) Now() uint64 {
	return l.clock.Now()
}

// Protocol returns the global configuration.
func (l *Ledger) Protocol() (*Protocol, error) {
	return l.getProtocol(state.New(l.db))
}

// Pool returns the committed pool of asset.
// The cache is read but never filled here, only operations holding the pool lock fill it.
func (l *Ledger) Pool(asset thor.Address) (*pool.Pool, error) {
	if p, ok := l.pools.Get(asset); ok {
		return &p, nil
	}
	var p pool.Pool
	ok, err := state.New(l.db).Get(pool.Key(asset), &p)
	if err != nil {
		return nil, errors.Wrap(err, "get pool")
	}
	if !ok {
		return nil, reverts.Newf(reverts.PoolNotFound, "no pool for asset %v", asset)
	}
	return &p, nil
}

// Position returns the position of user in the pool of asset.
// Users who never deposited get an empty position.
func (l *Ledger) Position(asset, user thor.Address) (*pool.Position, error) {
	if _, err := l.Pool(asset); err != nil {
		return nil, err
	}
	return loadPosition(state.New(l.db), asset, user)
}

// Pending returns the reward user would be paid by a deposit made now.
func (l *Ledger) Pending(asset, user thor.Address) (uint64, error) {
	p, err := l.Pool(asset)
	if err != nil {
		return 0, err
	}
	pos, err := loadPosition(state.New(l.db), asset, user)
	if err != nil {
		return 0, err
	}
	return pool.Pending(p, pos, l.clock.Now())
}

// Balance returns the custody balance of account in asset.
func (l *Ledger) Balance(asset, account thor.Address) (uint64, error) {
	return custody.New(state.New(l.db)).Balance(asset, account)
}

// Pools lists all pools in key order.
func (l *Ledger) Pools() ([]*pool.Pool, error) {
	it := l.db.NewIterator(pool.Range())
	defer it.Release()

	var pools []*pool.Pool
	for it.Next() {
		var p pool.Pool
		if err := rlp.DecodeBytes(it.Value(), &p); err != nil {
			return nil, errors.Wrapf(err, "decode pool %x", it.Key())
		}
		pools = append(pools, &p)
	}
	return pools, errors.Wrap(it.Error(), "iterate pools")
}

// Positions lists the positions of the pool of asset.
func (l *Ledger) Positions(asset thor.Address) ([]*pool.Position, error) {
	it := l.db.NewIterator(pool.PositionRange(asset))
	defer it.Release()

	var positions []*pool.Position
	for it.Next() {
		var pos pool.Position
		if err := rlp.DecodeBytes(it.Value(), &pos); err != nil {
			return nil, errors.Wrapf(err, "decode position %x", it.Key())
		}
		positions = append(positions, &pos)
	}
	return positions, errors.Wrap(it.Error(), "iterate positions")
}
