// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state stages the records of one ledger operation over a kv store.
//
//	  pool / position / balance / protocol records (RLP)
//	                   |
//	[ State ] -- checkpoints -- [ stacked map ]
//	                   |                |
//	              Commit (batch)   reads fall through
//	                   |                |
//	               [ kv.Store ] <-------+
//
// An operation either commits every staged record with one batch, or is
// dropped and leaves the store untouched.
package state
