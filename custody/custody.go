// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody keeps asset balances and moves them between accounts.
package custody

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	balanceBucket   = kv.Bucket("b")
	custodianBucket = kv.Bucket("c")
)

// BalanceKey is the store key of the balance of account in asset.
func BalanceKey(asset, account thor.Address) []byte {
	return balanceBucket.Key(asset.Bytes(), account.Bytes())
}

// Authority is the right to move funds out of an account.
type Authority struct {
	addr    thor.Address
	derived bool
}

// Signer is the authority of an end user over its own account.
func Signer(addr thor.Address) Authority {
	return Authority{addr: addr}
}

// Derive builds a program authority from seeds.
// Derived authorities can only be obtained by knowing the seeds, never from a plain address.
func Derive(seeds ...[]byte) Authority {
	return Authority{addr: thor.DeriveAddress(seeds...), derived: true}
}

// Address returns the address the authority acts as.
func (a Authority) Address() thor.Address {
	return a.addr
}

// Derived tells whether a is a program authority.
func (a Authority) Derived() bool {
	return a.derived
}

// Book reads and stages balances on a state.
type Book struct {
	state *state.State
}

// New creates a book over st.
func New(st *state.State) *Book {
	return &Book{state: st}
}

// Balance returns the balance of account in asset.
func (b *Book) Balance(asset, account thor.Address) (uint64, error) {
	var bal uint64
	if _, err := b.state.Get(BalanceKey(asset, account), &bal); err != nil {
		return 0, errors.Wrap(err, "get balance")
	}
	return bal, nil
}

func (b *Book) setBalance(asset, account thor.Address, bal uint64) error {
	return errors.Wrap(b.state.Set(BalanceKey(asset, account), bal), "set balance")
}

// Credit adds amount to the balance of account.
func (b *Book) Credit(asset, account thor.Address, amount uint64) error {
	bal, err := b.Balance(asset, account)
	if err != nil {
		return err
	}
	sum := bal + amount
	if sum < bal {
		return reverts.Newf(reverts.ArithmeticOverflow, "balance of %v overflows", account)
	}
	return b.setBalance(asset, account, sum)
}

// Custodian returns the program authority registered for account, if any.
func (b *Book) Custodian(account thor.Address) (thor.Address, bool, error) {
	var custodian thor.Address
	ok, err := b.state.Get(custodianBucket.Key(account.Bytes()), &custodian)
	if err != nil {
		return thor.Address{}, false, errors.Wrap(err, "get custodian")
	}
	return custodian, ok, nil
}

// Register puts account under the control of the derived authority auth.
// Registering the same pair again is a no-op.
func (b *Book) Register(account thor.Address, auth Authority) error {
	if !auth.derived {
		return reverts.New(reverts.Unauthorized, "only derived authorities can hold accounts")
	}
	custodian, ok, err := b.Custodian(account)
	if err != nil {
		return err
	}
	if ok {
		if custodian != auth.addr {
			return reverts.Newf(reverts.Unauthorized, "account %v is held by another authority", account)
		}
		return nil
	}
	return errors.Wrap(b.state.Set(custodianBucket.Key(account.Bytes()), auth.addr), "set custodian")
}

// Controls tells whether auth may move funds out of account.
func (b *Book) Controls(auth Authority, account thor.Address) (bool, error) {
	custodian, ok, err := b.Custodian(account)
	if err != nil {
		return false, err
	}
	if ok {
		return auth.derived && auth.addr == custodian, nil
	}
	return !auth.derived && auth.addr == account, nil
}

// Transfer moves amount of asset from one account to another on behalf of auth.
func (b *Book) Transfer(asset, from, to thor.Address, amount uint64, auth Authority) error {
	ok, err := b.Controls(auth, from)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.Newf(reverts.Unauthorized, "%v cannot move funds of %v", auth.addr, from)
	}
	if amount == 0 || from == to {
		return nil
	}

	bal, err := b.Balance(asset, from)
	if err != nil {
		return err
	}
	if bal < amount {
		return reverts.Newf(reverts.InsufficientFunds, "balance of %v is %d, need %d", from, bal, amount)
	}
	if err := b.setBalance(asset, from, bal-amount); err != nil {
		return err
	}
	return b.Credit(asset, to, amount)
}
