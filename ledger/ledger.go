// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger runs the entry operations of the reward pools.
// Each operation stages its changes on a fresh state and commits them in one
// batch, so a failed operation leaves nothing behind.
package ledger

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/cache"
	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/custody"
	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/pool"
	"github.com/vechain/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.WithContext("pkg", "ledger")

const defaultPoolCacheSize = 256

// Options options for creating a ledger.
type Options struct {
	PoolCacheSize int
}

// Receipt describes a settled deposit.
type Receipt struct {
	User           thor.Address
	Asset          thor.Address
	Amount         uint64
	Reward         uint64 // pending reward paid out by the deposit
	Staked         uint64 // stake of the user after the deposit
	RewardPerToken uint64
	Time           uint64
}

// Ledger owns the pool, position and balance records kept in db.
type Ledger struct {
	db    kv.Store
	clock clock.Clock
	pools *cache.LRU[thor.Address, pool.Pool]

	locksMu    sync.Mutex
	locks      map[thor.Address]*sync.Mutex
	protocolMu sync.Mutex

	depositFeed event.Feed
	scope       event.SubscriptionScope
}

// New creates a ledger over db, reading time from clk.
func New(db kv.Store, clk clock.Clock, opts Options) (*Ledger, error) {
	size := opts.PoolCacheSize
	if size <= 0 {
		size = defaultPoolCacheSize
	}
	pools, err := cache.NewLRU[thor.Address, pool.Pool](size)
	if err != nil {
		return nil, errors.Wrap(err, "pool cache")
	}
	return &Ledger{
		db:    db,
		clock: clk,
		pools: pools,
		locks: make(map[thor.Address]*sync.Mutex),
	}, nil
}

// SubscribeDeposits delivers the receipt of every committed deposit to ch.
// Receipts of one asset arrive in commit order. A deposit returns only after
// every subscriber received its receipt, so subscribers must keep reading.
func (l *Ledger) SubscribeDeposits(ch chan *Receipt) event.Subscription {
	return l.scope.Track(l.depositFeed.Subscribe(ch))
}

// Close ends all subscriptions.
func (l *Ledger) Close() {
	l.scope.Close()
}

// lock serializes operations on the pool and balances of asset.
func (l *Ledger) lock(asset thor.Address) func() {
	l.locksMu.Lock()
	mu, ok := l.locks[asset]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[asset] = mu
	}
	l.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// exec runs fn on a fresh state and commits it when fn succeeds.
func (l *Ledger) exec(op string, fn func(st *state.State) error) error {
	start := time.Now()
	st := state.New(l.db)
	if err := fn(st); err != nil {
		if ve, ok := reverts.As(err); ok {
			metricRevertCount().AddWithLabel(1, map[string]string{"kind": ve.Kind().String()})
		}
		return err
	}
	if err := st.Commit(l.db); err != nil {
		return errors.Wrap(err, op)
	}
	metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": op})
	return nil
}

func (l *Ledger) getProtocol(st *state.State) (*Protocol, error) {
	var p Protocol
	ok, err := st.Get(protocolKey, &p)
	if err != nil {
		return nil, errors.Wrap(err, "get protocol")
	}
	if !ok {
		return nil, reverts.New(reverts.NotInitialized, "protocol not initialized")
	}
	return &p, nil
}

// loadPool reads the pool of asset through the cache.
// It must be called with the lock of asset held.
func (l *Ledger) loadPool(st *state.State, asset thor.Address) (*pool.Pool, error) {
	p, err := l.pools.GetOrLoad(asset, func(asset thor.Address) (pool.Pool, error) {
		var p pool.Pool
		ok, err := st.Get(pool.Key(asset), &p)
		if err != nil {
			return p, errors.Wrap(err, "get pool")
		}
		if !ok {
			return p, reverts.Newf(reverts.PoolNotFound, "no pool for asset %v", asset)
		}
		return p, nil
	})
	if snap, changed := l.pools.Stats().Changed(); changed {
		logger.Debug("pool cache", "hit", snap.Hit, "miss", snap.Miss, "rate", snap.HitRate())
		metricPoolCache().SetWithLabel(snap.Hit, map[string]string{"event": "hit"})
		metricPoolCache().SetWithLabel(snap.Miss, map[string]string{"event": "miss"})
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func loadPosition(st *state.State, asset, user thor.Address) (*pool.Position, error) {
	pos := pool.NewPosition(user)
	if _, err := st.Get(pool.PositionKey(asset, user), pos); err != nil {
		return nil, errors.Wrap(err, "get position")
	}
	return pos, nil
}

// InitProtocol writes the global configuration. A zero fee recipient defaults to owner.
func (l *Ledger) InitProtocol(owner, feeRecipient, asset thor.Address) (*Protocol, error) {
	l.protocolMu.Lock()
	defer l.protocolMu.Unlock()

	if owner.IsZero() {
		return nil, reverts.New(reverts.Unauthorized, "protocol owner is zero")
	}
	if feeRecipient.IsZero() {
		feeRecipient = owner
	}
	proto := &Protocol{
		Owner:        owner,
		FeeRecipient: feeRecipient,
		Fee:          ProtocolFee,
		Asset:        asset,
	}
	err := l.exec("init", func(st *state.State) error {
		has, err := st.Has(protocolKey)
		if err != nil {
			return err
		}
		if has {
			return reverts.New(reverts.AlreadyInitialized, "protocol already initialized")
		}
		return st.Set(protocolKey, proto)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("protocol initialized", "owner", owner, "feeRecipient", feeRecipient, "asset", asset)
	return proto, nil
}

// Open creates the pool of asset and funds it with totalReward taken from owner.
// A zero asset stands for the canonical asset of the protocol.
func (l *Ledger) Open(owner, asset thor.Address, periodEnd, totalReward uint64) (*pool.Pool, error) {
	if asset.IsZero() {
		proto, err := l.Protocol()
		if err != nil {
			return nil, err
		}
		if proto.Asset.IsZero() {
			return nil, reverts.New(reverts.NotInitialized, "no canonical asset")
		}
		asset = proto.Asset
	}

	unlock := l.lock(asset)
	defer unlock()

	var opened *pool.Pool
	err := l.exec("open", func(st *state.State) error {
		if _, err := l.getProtocol(st); err != nil {
			return err
		}
		if _, err := l.loadPool(st, asset); err == nil {
			return reverts.Newf(reverts.PoolExists, "pool for asset %v exists", asset)
		} else if !reverts.Is(err, reverts.PoolNotFound) {
			return err
		}

		p, err := pool.Open(owner, asset, periodEnd, totalReward, l.clock.Now())
		if err != nil {
			return err
		}
		book := custody.New(st)
		if err := book.Register(p.RewardAccount(), p.Authority()); err != nil {
			return err
		}
		if err := book.Register(p.StakeAccount(), p.Authority()); err != nil {
			return err
		}
		if err := book.Transfer(asset, owner, p.RewardAccount(), totalReward, custody.Signer(owner)); err != nil {
			return err
		}
		opened = p
		return st.Set(pool.Key(asset), p)
	})
	if err != nil {
		return nil, err
	}
	l.pools.Add(asset, *opened)

	metricOpenCount().Add(1)
	logger.Debug("pool opened",
		"owner", owner,
		"asset", asset,
		"start", opened.PeriodStart,
		"end", opened.PeriodEnd,
		"reward", opened.TotalReward,
		"rate", opened.RewardPerSecond,
	)
	return opened, nil
}

// Deposit stakes amount of asset for user, paying out the reward the user earned so far.
func (l *Ledger) Deposit(user, asset thor.Address, amount uint64) (*Receipt, error) {
	unlock := l.lock(asset)
	defer unlock()

	var (
		p       *pool.Pool
		receipt *Receipt
	)
	err := l.exec("deposit", func(st *state.State) error {
		var err error
		if p, err = l.loadPool(st, asset); err != nil {
			return err
		}
		now := l.clock.Now()
		if p.Ended(now) {
			return reverts.Newf(reverts.PeriodEnded, "period ended at %d", p.PeriodEnd)
		}
		if amount == 0 {
			return reverts.New(reverts.InvalidAmount, "deposit amount is zero")
		}

		book := custody.New(st)
		if err := book.Transfer(asset, user, p.StakeAccount(), amount, custody.Signer(user)); err != nil {
			return err
		}

		pos, err := loadPosition(st, asset, user)
		if err != nil {
			return err
		}
		reward, err := pool.Settle(p, pos, amount, now)
		if err != nil {
			return err
		}
		if reward > 0 {
			if err := book.Transfer(asset, p.RewardAccount(), user, reward, p.Authority()); err != nil {
				return err
			}
		}

		if err := st.Set(pool.Key(asset), p); err != nil {
			return err
		}
		if err := st.Set(pool.PositionKey(asset, user), pos); err != nil {
			return err
		}
		receipt = &Receipt{
			User:           user,
			Asset:          asset,
			Amount:         amount,
			Reward:         reward,
			Staked:         pos.StakedAmount,
			RewardPerToken: p.RewardPerTokenStored,
			Time:           now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.pools.Add(asset, *p)

	labels := map[string]string{"asset": asset.String()}
	metricDepositCount().AddWithLabel(1, labels)
	if receipt.Reward > 0 {
		metricRewardPaid().AddWithLabel(metrics.Saturate(receipt.Reward), labels)
	}
	metricTotalStaked().SetWithLabel(metrics.Saturate(p.TotalStaked), labels)

	logger.Debug("deposited",
		"user", user,
		"asset", asset,
		"amount", amount,
		"reward", receipt.Reward,
		"staked", receipt.Staked,
		"rpt", receipt.RewardPerToken,
	)
	l.depositFeed.Send(receipt)
	return receipt, nil
}

// Allocate credits amount of asset to account out of thin air.
// It serves genesis allocations only.
func (l *Ledger) Allocate(asset, account thor.Address, amount uint64) error {
	unlock := l.lock(asset)
	defer unlock()

	return l.exec("allocate", func(st *state.State) error {
		return custody.New(st).Credit(asset, account, amount)
	})
}
