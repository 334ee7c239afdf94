// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert.
type Kind uint8

const (
	ArithmeticOverflow Kind = iota + 1
	ArithmeticUnderflow
	InvalidPeriod
	PeriodEnded
	InsufficientFunds
	Unauthorized
	InvalidAmount
	PoolExists
	PoolNotFound
	NotInitialized
	AlreadyInitialized
)

var kindNames = map[Kind]string{
	ArithmeticOverflow:  "ArithmeticOverflow",
	ArithmeticUnderflow: "ArithmeticUnderflow",
	InvalidPeriod:       "InvalidPeriod",
	PeriodEnded:         "PeriodEnded",
	InsufficientFunds:   "InsufficientFunds",
	Unauthorized:        "Unauthorized",
	InvalidAmount:       "InvalidAmount",
	PoolExists:          "PoolExists",
	PoolNotFound:        "PoolNotFound",
	NotInitialized:      "NotInitialized",
	AlreadyInitialized:  "AlreadyInitialized",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ErrRevert is a domain failure that aborts the operation with no side effects.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.kind.String() + ": " + e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func (e *ErrRevert) Message() string {
	return e.message
}

func IsRevertErr(err any) bool {
	_, ok := As(err)
	return ok
}

// As extracts the revert from err, looking through wrapped errors.
func As(err any) (*ErrRevert, bool) {
	if err == nil {
		return nil, false
	}
	e, ok := err.(error)
	if !ok {
		return nil, false
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve, true
	}
	return nil, false
}

// Is reports whether err is a revert of the given kind.
func Is(err error, kind Kind) bool {
	ve, ok := As(err)
	return ok && ve.kind == kind
}
