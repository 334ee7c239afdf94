// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	var s Stats
	assert.Equal(t, float64(0), s.Snapshot().HitRate())

	s.Hit()
	s.Miss()
	snap, changed := s.Changed()
	assert.Equal(t, Snapshot{Hit: 1, Miss: 1}, snap)
	assert.Equal(t, 0.5, snap.HitRate())
	assert.True(t, changed)

	_, changed = s.Changed()
	assert.False(t, changed, "rate did not move")

	s.Hit()
	assert.Equal(t, int64(3), s.Hit())
	snap, changed = s.Changed()
	assert.Equal(t, Snapshot{Hit: 3, Miss: 1}, snap)
	assert.Equal(t, 0.75, snap.HitRate())
	assert.True(t, changed)
}
