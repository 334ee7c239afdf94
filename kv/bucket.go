// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides logical bucket for kv store.
// Keys in a bucket are the bucket name followed by the concatenated key parts.
type Bucket string

// Key builds the full key of the given parts inside the bucket.
func (b Bucket) Key(parts ...[]byte) []byte {
	n := len(b)
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	key = append(key, b...)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// Strip removes the bucket name from a full key.
func (b Bucket) Strip(key []byte) []byte {
	return key[len(b):]
}

// Range returns the range covering all keys in the bucket starting with prefix.
func (b Bucket) Range(prefix ...[]byte) Range {
	r := util.BytesPrefix(b.Key(prefix...))
	return Range{From: r.Start, To: r.Limit}
}
