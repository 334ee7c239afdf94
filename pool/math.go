// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/rewardpool/reverts"
)

// Precision scales the reward per staked unit accumulator.
const Precision uint64 = 1_000_000_000

var precision = uint256.NewInt(Precision)

// mulDiv returns x*y/d floored, computed on 256 bits.
// The result must fit in 64 bits.
func mulDiv(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, reverts.New(reverts.ArithmeticOverflow, "division by zero")
	}
	z, overflow := new(uint256.Int).MulDivOverflow(uint256.NewInt(x), uint256.NewInt(y), uint256.NewInt(d))
	if overflow || !z.IsUint64() {
		return 0, reverts.Newf(reverts.ArithmeticOverflow, "%d * %d / %d overflows", x, y, d)
	}
	return z.Uint64(), nil
}

// accrual returns the accumulator growth of emitting rate per second during elapsed
// seconds over staked units.
func accrual(rate, elapsed, staked uint64) (uint64, error) {
	emitted := new(uint256.Int).Mul(uint256.NewInt(rate), uint256.NewInt(elapsed))
	z, overflow := new(uint256.Int).MulDivOverflow(emitted, precision, uint256.NewInt(staked))
	if overflow || !z.IsUint64() {
		return 0, reverts.Newf(reverts.ArithmeticOverflow, "accrual of %d/s over %ds on %d overflows", rate, elapsed, staked)
	}
	return z.Uint64(), nil
}

// entitlement converts staked units and an accumulator value into monetary units.
func entitlement(staked, perToken uint64) (uint64, error) {
	return mulDiv(staked, perToken, Precision)
}

func add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, reverts.Newf(reverts.ArithmeticOverflow, "%d + %d overflows", a, b)
	}
	return sum, nil
}

func sub(a, b uint64) (uint64, error) {
	if a < b {
		return 0, reverts.Newf(reverts.ArithmeticUnderflow, "%d - %d underflows", a, b)
	}
	return a - b, nil
}
