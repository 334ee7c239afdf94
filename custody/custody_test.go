// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/reverts"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	asset = thor.BytesToAddress([]byte("asset"))
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

func newBook(t *testing.T) (*Book, *state.State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.New(db)
	return New(st), st, db
}

func TestTransfer(t *testing.T) {
	book, _, _ := newBook(t)
	require.NoError(t, book.Credit(asset, alice, 100))

	require.NoError(t, book.Transfer(asset, alice, bob, 40, Signer(alice)))

	bal, err := book.Balance(asset, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), bal)
	bal, err = book.Balance(asset, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), bal)

	err = book.Transfer(asset, alice, bob, 61, Signer(alice))
	assert.True(t, reverts.Is(err, reverts.InsufficientFunds))

	err = book.Transfer(asset, alice, bob, 1, Signer(bob))
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
}

func TestCreditOverflow(t *testing.T) {
	book, _, _ := newBook(t)
	require.NoError(t, book.Credit(asset, alice, math.MaxUint64))
	err := book.Credit(asset, alice, 1)
	assert.True(t, reverts.Is(err, reverts.ArithmeticOverflow))
}

func TestDerivedAuthority(t *testing.T) {
	book, _, _ := newBook(t)

	auth := Derive([]byte("authority"), asset.Bytes())
	account := thor.DeriveAddress([]byte("reward"), asset.Bytes())
	require.NoError(t, book.Register(account, auth))
	require.NoError(t, book.Register(account, auth))
	require.NoError(t, book.Credit(asset, account, 10))

	// a signer holding the same address is not the derived authority
	err := book.Transfer(asset, account, alice, 1, Signer(auth.Address()))
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
	err = book.Transfer(asset, account, alice, 1, Signer(account))
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	// derived authorities do not control user accounts
	require.NoError(t, book.Credit(asset, alice, 5))
	err = book.Transfer(asset, alice, bob, 1, auth)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))

	require.NoError(t, book.Transfer(asset, account, alice, 4, auth))
	bal, err := book.Balance(asset, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), bal)

	other := Derive([]byte("other"))
	err = book.Register(account, other)
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
	err = book.Register(bob, Signer(bob))
	assert.True(t, reverts.Is(err, reverts.Unauthorized))
}

func TestBalancesPersistOnCommit(t *testing.T) {
	book, st, db := newBook(t)
	require.NoError(t, book.Credit(asset, alice, 7))
	require.NoError(t, st.Commit(db))

	bal, err := New(state.New(db)).Balance(asset, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), bal)
}
