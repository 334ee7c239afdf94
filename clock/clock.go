// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the time source of the ledger, in unix seconds.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vechain/rewardpool/log"
)

var logger = log.WithContext("pkg", "clock")

// MaxOffset is the clock offset above which SyncNTP warns.
const MaxOffset = 5 * time.Second

// Clock returns the current time in unix seconds.
type Clock interface {
	Now() uint64
}

// System is the wall clock, corrected by the last NTP offset.
// Values returned by Now never decrease.
type System struct {
	offset atomic.Int64 // nanoseconds
	last   atomic.Uint64
	now    func() time.Time
	query  func(host string) (*ntp.Response, error)
}

// NewSystem creates a system clock.
func NewSystem() *System {
	return &System{
		now:   time.Now,
		query: ntp.Query,
	}
}

// Now implements Clock.
func (s *System) Now() uint64 {
	t := s.now().Add(time.Duration(s.offset.Load())).Unix()
	if t < 0 {
		t = 0
	}
	next := uint64(t)
	for {
		last := s.last.Load()
		if next <= last {
			return last
		}
		if s.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Offset returns the offset applied to the local time.
func (s *System) Offset() time.Duration {
	return time.Duration(s.offset.Load())
}

// SyncNTP queries the given NTP server and applies the reported offset.
// Offsets larger than MaxOffset are logged.
func (s *System) SyncNTP(server string) error {
	resp, err := s.query(server)
	if err != nil {
		logger.Debug("failed to access NTP", "server", server, "err", err)
		return err
	}
	offset := resp.ClockOffset
	if offset > MaxOffset || offset < -MaxOffset {
		logger.Warn("clock offset detected", "offset", common.PrettyDuration(offset))
	}
	s.offset.Store(int64(offset))
	return nil
}

// Manual is a clock moved only by hand.
type Manual struct {
	now atomic.Uint64
}

// NewManual creates a manual clock starting at now.
func NewManual(now uint64) *Manual {
	m := &Manual{}
	m.now.Store(now)
	return m
}

// Now implements Clock.
func (m *Manual) Now() uint64 {
	return m.now.Load()
}

// Set moves the clock to t, which may go backwards.
func (m *Manual) Set(t uint64) {
	m.now.Store(t)
}

// Advance moves the clock forward by d seconds and returns the new time.
func (m *Manual) Advance(d uint64) uint64 {
	return m.now.Add(d)
}
