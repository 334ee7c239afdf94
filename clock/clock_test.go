// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/assert"
)

func TestSystemNonDecreasing(t *testing.T) {
	wall := time.Unix(1000, 0)
	s := NewSystem()
	s.now = func() time.Time { return wall }

	assert.Equal(t, uint64(1000), s.Now())

	wall = time.Unix(990, 0)
	assert.Equal(t, uint64(1000), s.Now())

	wall = time.Unix(1010, 0)
	assert.Equal(t, uint64(1010), s.Now())
}

func TestSystemSyncNTP(t *testing.T) {
	s := NewSystem()
	s.now = func() time.Time { return time.Unix(1000, 0) }
	s.query = func(string) (*ntp.Response, error) {
		return &ntp.Response{ClockOffset: 30 * time.Second}, nil
	}

	assert.NoError(t, s.SyncNTP("pool.ntp.org"))
	assert.Equal(t, 30*time.Second, s.Offset())
	assert.Equal(t, uint64(1030), s.Now())

	s.query = func(string) (*ntp.Response, error) {
		return nil, errors.New("unreachable")
	}
	assert.Error(t, s.SyncNTP("pool.ntp.org"))
	assert.Equal(t, 30*time.Second, s.Offset())
}

func TestManual(t *testing.T) {
	m := NewManual(10)
	assert.Equal(t, uint64(10), m.Now())
	assert.Equal(t, uint64(15), m.Advance(5))
	m.Set(3)
	assert.Equal(t, uint64(3), m.Now())

	var c Clock = m
	assert.Equal(t, uint64(3), c.Now())
}
