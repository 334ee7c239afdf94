// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package receiptdb keeps a queryable history of deposit receipts in sqlite.
// The ledger database stays the source of truth; the history is an index fed
// from the ledger deposit subscription.
package receiptdb

import (
	"context"
	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.WithContext("pkg", "receiptdb")

// receipts buffered between the ledger and the writer
const feedBuffer = 64

type ReceiptDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open receipt db at given path.
func New(path string) (receiptDB *ReceiptDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open receipt db")
	}
	defer func() {
		if receiptDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps in-memory databases shared and writes serialized
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(depositTableSchema); err != nil {
		return nil, errors.Wrap(err, "create receipt tables")
	}

	driverVer, _, _ := sqlite3.Version()
	return &ReceiptDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a receipt db in ram.
func NewMem() (*ReceiptDB, error) {
	return New(":memory:")
}

// Close close the receipt db.
func (db *ReceiptDB) Close() error {
	return db.db.Close()
}

func (db *ReceiptDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the linked sqlite library.
func (db *ReceiptDB) DriverVersion() string {
	return db.driverVersion
}

// Write records the given receipts in one transaction.
func (db *ReceiptDB) Write(receipts ...*ledger.Receipt) error {
	if len(receipts) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, r := range receipts {
		d := newDeposit(r)
		if _, err := tx.Exec("INSERT INTO deposit(asset, user, amount, reward, staked, rewardPerToken, time) VALUES (?, ?, ?, ?, ?, ?, ?);",
			d.Asset.Bytes(),
			d.User.Bytes(),
			int64(d.Amount),
			int64(d.Reward),
			int64(d.Staked),
			int64(d.RewardPerToken),
			int64(d.Time),
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricWrittenCount().Add(int64(len(receipts)))
	return nil
}

// Track subscribes to the deposits of l. The returned function writes them
// until ctx is done, then drops the subscription.
func (db *ReceiptDB) Track(l *ledger.Ledger) func(ctx context.Context) error {
	ch := make(chan *ledger.Receipt, feedBuffer)
	sub := l.SubscribeDeposits(ch)

	return func(ctx context.Context) error {
		defer sub.Unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-sub.Err():
				return nil
			case r := <-ch:
				batch := []*ledger.Receipt{r}
				for len(ch) > 0 {
					batch = append(batch, <-ch)
				}
				if err := db.Write(batch...); err != nil {
					// the ledger keeps the records, only the history misses them
					logger.Warn("failed to record deposits", "count", len(batch), "err", err)
				}
			}
		}
	}
}

func (db *ReceiptDB) FilterDeposits(ctx context.Context, filter *Filter) ([]*Deposit, error) {
	if filter == nil {
		return db.queryDeposits(ctx, "SELECT * FROM deposit ORDER BY seq ASC")
	}
	if r := filter.Range; r != nil && r.To != nil && *r.To < r.From {
		return nil, errors.Errorf("inverted range [%d, %d]", r.From, *r.To)
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := "SELECT * FROM deposit WHERE 1"
	if filter.Asset != nil {
		args = append(args, filter.Asset.Bytes())
		stmt += " AND asset = ? "
	}
	if filter.User != nil {
		args = append(args, filter.User.Bytes())
		stmt += " AND user = ? "
	}
	if filter.Range != nil {
		args = append(args, int64(filter.Range.From))
		stmt += " AND time >= ? "
		if filter.Range.To != nil {
			args = append(args, int64(*filter.Range.To))
			stmt += " AND time <= ? "
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, int64(filter.Options.Offset), int64(filter.Options.Limit))
	}
	return db.queryDeposits(ctx, stmt, args...)
}

func (db *ReceiptDB) queryDeposits(ctx context.Context, stmt string, args ...any) ([]*Deposit, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []*Deposit
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq            int64
			asset          []byte
			user           []byte
			amount         int64
			reward         int64
			staked         int64
			rewardPerToken int64
			time           int64
		)
		if err := rows.Scan(
			&seq,
			&asset,
			&user,
			&amount,
			&reward,
			&staked,
			&rewardPerToken,
			&time,
		); err != nil {
			return nil, err
		}
		deposits = append(deposits, &Deposit{
			Seq:            uint64(seq),
			Asset:          thor.BytesToAddress(asset),
			User:           thor.BytesToAddress(user),
			Amount:         uint64(amount),
			Reward:         uint64(reward),
			Staked:         uint64(staked),
			RewardPerToken: uint64(rewardPerToken),
			Time:           uint64(time),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deposits, nil
}
