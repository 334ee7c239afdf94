// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store on goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/rewardpool/kv"
)

var _ kv.Store = (*LevelDB)(nil)

// Options tunes the database. Values below the minimums are raised to them.
type Options struct {
	CacheSize              int // in MiB
	OpenFilesCacheCapacity int
}

func (o Options) leveldb() *opt.Options {
	cacheSize := max(o.CacheSize, 16)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // two write buffers live at once
		Filter:                 filter.NewBloomFilter(10),
	}
}

var (
	// a ledger operation is acknowledged only once its batch is on disk
	syncWrite = &opt.WriteOptions{Sync: true}
	noReadOpt = &opt.ReadOptions{}
)

type LevelDB struct {
	db  *leveldb.DB
	stg storage.Storage // leveldb.Open leaves it to the caller to close
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open storage %v", path)
	}
	return open(stg, opts)
}

// NewMem creates a database living in memory only.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	db, err := leveldb.Open(stg, opts.leveldb())
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db: db, stg: stg}, nil
}

// Get returns kv.ErrNotFound for absent keys.
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	val, err := l.db.Get(key, noReadOpt)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, kv.ErrNotFound
	}
	return val, err
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, noReadOpt)
}

func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, syncWrite)
}

func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, syncWrite)
}

// Close releases the database and its file lock, any later call fails.
func (l *LevelDB) Close() error {
	err := l.db.Close()
	if serr := l.stg.Close(); err == nil {
		err = serr
	}
	return err
}

func (l *LevelDB) NewBatch() kv.Batch {
	return &batch{l.db, new(leveldb.Batch)}
}

func (l *LevelDB) NewIterator(r kv.Range) kv.Iterator {
	return l.db.NewIterator(&util.Range{Start: r.From, Limit: r.To}, noReadOpt)
}

type batch struct {
	db  *leveldb.DB
	ops *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.ops.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.ops.Len() }

// Write applies the collected ops atomically. An empty batch is a no-op.
func (b *batch) Write() error {
	if b.ops.Len() == 0 {
		return nil
	}
	return b.db.Write(b.ops, syncWrite)
}
