// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package receiptdb

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/thor"
)

var (
	assetA = thor.BytesToAddress([]byte("assetA"))
	assetB = thor.BytesToAddress([]byte("assetB"))
	alice  = thor.BytesToAddress([]byte("alice"))
	bob    = thor.BytesToAddress([]byte("bob"))
)

func newReceiptDB(t *testing.T) *ReceiptDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func receipt(asset, user thor.Address, amount, ts uint64) *ledger.Receipt {
	return &ledger.Receipt{Asset: asset, User: user, Amount: amount, Staked: amount, Time: ts}
}

func TestFilterDeposits(t *testing.T) {
	db := newReceiptDB(t)
	ctx := context.Background()

	require.NoError(t, db.Write(
		receipt(assetA, alice, 10, 100),
		receipt(assetA, bob, 20, 110),
		receipt(assetB, alice, 30, 120),
	))
	require.NoError(t, db.Write(receipt(assetA, alice, 40, 130)))

	all, err := db.FilterDeposits(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, d := range all {
		assert.Equal(t, uint64(i+1), d.Seq)
	}

	tests := []struct {
		name    string
		filter  *Filter
		amounts []uint64
	}{
		{"empty filter", &Filter{}, []uint64{10, 20, 30, 40}},
		{"by asset", &Filter{Asset: &assetA}, []uint64{10, 20, 40}},
		{"by user", &Filter{User: &alice}, []uint64{10, 30, 40}},
		{"by asset and user", &Filter{Asset: &assetA, User: &alice}, []uint64{10, 40}},
		{"desc", &Filter{Asset: &assetA, Order: DESC}, []uint64{40, 20, 10}},
		{"range", &Filter{Range: &Range{From: 110, To: ptr(120)}}, []uint64{20, 30}},
		{"open range", &Filter{Range: &Range{From: 115}}, []uint64{30, 40}},
		{"single instant", &Filter{Range: &Range{From: 110, To: ptr(110)}}, []uint64{20}},
		{"paged", &Filter{Options: &Options{Offset: 1, Limit: 2}}, []uint64{20, 30}},
		{"no match", &Filter{User: &assetB}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deposits, err := db.FilterDeposits(ctx, tt.filter)
			require.NoError(t, err)
			var amounts []uint64
			for _, d := range deposits {
				amounts = append(amounts, d.Amount)
			}
			assert.Equal(t, tt.amounts, amounts)
		})
	}
}

func TestFilterInvertedRange(t *testing.T) {
	db := newReceiptDB(t)
	require.NoError(t, db.Write(receipt(assetA, alice, 10, 100)))

	_, err := db.FilterDeposits(context.Background(), &Filter{Range: &Range{From: 120, To: ptr(110)}})
	assert.ErrorContains(t, err, "inverted range")
}

func ptr(v uint64) *uint64 { return &v }

func TestLargeValues(t *testing.T) {
	db := newReceiptDB(t)

	r := receipt(assetA, alice, math.MaxUint64, math.MaxInt64+1)
	r.RewardPerToken = math.MaxUint64 - 1
	require.NoError(t, db.Write(r))

	deposits, err := db.FilterDeposits(context.Background(), &Filter{User: &alice})
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.Equal(t, uint64(math.MaxUint64), deposits[0].Amount)
	assert.Equal(t, uint64(math.MaxUint64-1), deposits[0].RewardPerToken)
	assert.Equal(t, uint64(math.MaxInt64+1), deposits[0].Time)
}

func TestPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.db")
	db, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	assert.NotEmpty(t, db.DriverVersion())
	require.NoError(t, db.Write(receipt(assetA, alice, 1, 1)))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	deposits, err := db.FilterDeposits(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, deposits, 1)
}

func TestTrack(t *testing.T) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	l, err := ledger.New(store, clock.NewManual(1_000), ledger.Options{})
	require.NoError(t, err)
	_, err = l.InitProtocol(alice, thor.Address{}, assetA)
	require.NoError(t, err)
	require.NoError(t, l.Allocate(assetA, alice, 2_000))
	require.NoError(t, l.Allocate(assetA, bob, 100))
	_, err = l.Open(alice, assetA, 2_000, 1_000)
	require.NoError(t, err)

	db := newReceiptDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	run := db.Track(l)
	go func() { done <- run(ctx) }()

	_, err = l.Deposit(alice, assetA, 500)
	require.NoError(t, err)
	_, err = l.Deposit(bob, assetA, 50)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		deposits, err := db.FilterDeposits(context.Background(), &Filter{Asset: &assetA})
		return err == nil && len(deposits) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	deposits, err := db.FilterDeposits(context.Background(), &Filter{User: &bob})
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.Equal(t, uint64(50), deposits[0].Amount)
	assert.Equal(t, uint64(1_000), deposits[0].Time)
}
