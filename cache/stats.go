// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Snapshot is the hit/miss count of a cache at some point.
type Snapshot struct {
	Hit, Miss int64
}

// HitRate returns the share of lookups served from the cache, 0 if none happened.
func (s Snapshot) HitRate() float64 {
	if lookups := s.Hit + s.Miss; lookups > 0 {
		return float64(s.Hit) / float64(lookups)
	}
	return 0
}

// Stats counts cache lookups.
type Stats struct {
	hit, miss atomic.Int64
	permille  atomic.Int32 // hit rate reported by the last Changed call
}

func (s *Stats) Hit() int64  { return s.hit.Add(1) }
func (s *Stats) Miss() int64 { return s.miss.Add(1) }

// Snapshot returns the current counts.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{Hit: s.hit.Load(), Miss: s.miss.Load()}
}

// Changed returns the current counts, and whether the hit rate moved by
// at least one permille since the previous call.
func (s *Stats) Changed() (Snapshot, bool) {
	snap := s.Snapshot()
	permille := int32(snap.HitRate() * 1000)
	return snap, s.permille.Swap(permille) != permille
}
