// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the byte level store the ledger state is persisted into.
package kv

import "github.com/pkg/errors"

// ErrNotFound is returned by Reader.Get for absent keys.
var ErrNotFound = errors.New("kv: key not found")

// IsNotFound reports whether err means the key is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type Reader interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	// NewIterator walks the keys of r in ascending order.
	NewIterator(r Range) Iterator
}

type Writer interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Store reads keys and groups writes into atomic batches.
type Store interface {
	Reader
	Writer

	NewBatch() Batch
}

// Batch collects writes until Write applies all of them at once.
type Batch interface {
	Writer

	Len() int
	Write() error
}

type Iterator interface {
	Next() bool
	Release()
	Error() error

	Key() []byte
	Value() []byte
}

// Range is the key range [From, To). A nil To is unbounded.
type Range struct {
	From []byte
	To   []byte
}
