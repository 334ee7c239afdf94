// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(PeriodEnded, "test")
	assert.Equal(t, "test", revert.Message())
	assert.Equal(t, "PeriodEnded: test", revert.Error())
	assert.Equal(t, PeriodEnded, revert.Kind())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_Is(t *testing.T) {
	wrapped := errors.Wrap(Newf(InsufficientFunds, "balance %d < %d", 1, 2), "deposit")

	assert.True(t, Is(wrapped, InsufficientFunds))
	assert.False(t, Is(wrapped, Unauthorized))
	assert.False(t, Is(errors.New("plain"), InsufficientFunds))
	assert.True(t, IsRevertErr(wrapped))

	ve, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "balance 1 < 2", ve.Message())
}

func Test_KindString(t *testing.T) {
	for k := ArithmeticOverflow; k <= AlreadyInitialized; k++ {
		assert.NotContains(t, k.String(), "Kind(")
	}
	assert.Equal(t, "Kind(0)", Kind(0).String())
}
