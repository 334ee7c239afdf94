// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucket_Key(t *testing.T) {
	tests := []struct {
		b     Bucket
		parts [][]byte
		want  string
	}{
		{Bucket(""), [][]byte{[]byte("k1")}, "k1"},
		{Bucket("p"), nil, "p"},
		{Bucket("p"), [][]byte{[]byte("a")}, "pa"},
		{Bucket("u"), [][]byte{[]byte("a"), []byte("b")}, "uab"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			key := tt.b.Key(tt.parts...)
			assert.Equal(t, tt.want, string(key))
			assert.Equal(t, string(bytes.Join(tt.parts, nil)), string(tt.b.Strip(key)))
		})
	}
}

func TestBucket_Range(t *testing.T) {
	r := Bucket("u").Range([]byte("a"))
	assert.Equal(t, "ua", string(r.From))
	assert.Equal(t, "ub", string(r.To))

	inside := Bucket("u").Key([]byte("a"), []byte("zzz"))
	outside := Bucket("u").Key([]byte("b"))
	assert.True(t, bytes.Compare(inside, r.From) >= 0 && bytes.Compare(inside, r.To) < 0)
	assert.False(t, bytes.Compare(outside, r.From) >= 0 && bytes.Compare(outside, r.To) < 0)
}
