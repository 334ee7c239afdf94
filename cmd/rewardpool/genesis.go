// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/reverts"
	"github.com/vechain/rewardpool/thor"
)

// Genesis is the initial content of a ledger.
type Genesis struct {
	Name     string `yaml:"name"`
	Protocol struct {
		Owner        string `yaml:"owner"`
		FeeRecipient string `yaml:"feeRecipient"`
		Asset        string `yaml:"asset"`
	} `yaml:"protocol"`
	Allocations []Allocation `yaml:"allocations"`
}

type Allocation struct {
	Asset   string `yaml:"asset"`
	Account string `yaml:"account"`
	Amount  uint64 `yaml:"amount"`
}

func parseAddress(s string, optional bool) (thor.Address, error) {
	if s == "" && optional {
		return thor.Address{}, nil
	}
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, errors.WithMessagef(err, "address %q", s)
	}
	return *addr, nil
}

// LoadGenesis reads a YAML genesis.
func LoadGenesis(r io.Reader) (*Genesis, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var gene Genesis
	if err := decoder.Decode(&gene); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gene, nil
}

// LoadGenesisFile reads the YAML genesis at path.
func LoadGenesisFile(path string) (*Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis")
	}
	defer f.Close()
	return LoadGenesis(f)
}

// Apply initializes the protocol and credits the allocations.
// It returns false without touching the ledger when the protocol was already initialized.
func (g *Genesis) Apply(l *ledger.Ledger) (bool, error) {
	if _, err := l.Protocol(); err == nil {
		return false, nil
	} else if !reverts.Is(err, reverts.NotInitialized) {
		return false, err
	}

	owner, err := parseAddress(g.Protocol.Owner, false)
	if err != nil {
		return false, errors.WithMessage(err, "protocol owner")
	}
	feeRecipient, err := parseAddress(g.Protocol.FeeRecipient, true)
	if err != nil {
		return false, errors.WithMessage(err, "fee recipient")
	}
	asset, err := parseAddress(g.Protocol.Asset, true)
	if err != nil {
		return false, errors.WithMessage(err, "canonical asset")
	}

	type credit struct {
		asset, account thor.Address
		amount         uint64
	}
	credits := make([]credit, 0, len(g.Allocations))
	for i, a := range g.Allocations {
		allocAsset, err := parseAddress(a.Asset, true)
		if err != nil {
			return false, errors.WithMessagef(err, "allocation %d", i)
		}
		if allocAsset.IsZero() {
			allocAsset = asset
		}
		account, err := parseAddress(a.Account, false)
		if err != nil {
			return false, errors.WithMessagef(err, "allocation %d", i)
		}
		credits = append(credits, credit{allocAsset, account, a.Amount})
	}

	// allocations go first, the protocol record marks the genesis as applied
	for _, c := range credits {
		if err := l.Allocate(c.asset, c.account, c.amount); err != nil {
			return false, errors.WithMessagef(err, "allocate %v", c.account)
		}
	}
	if _, err := l.InitProtocol(owner, feeRecipient, asset); err != nil {
		return false, err
	}
	return true, nil
}

// devAccounts are funded by the solo genesis.
var devAccounts = []thor.Address{
	thor.DeriveAddress([]byte("dev"), []byte{0}),
	thor.DeriveAddress([]byte("dev"), []byte{1}),
	thor.DeriveAddress([]byte("dev"), []byte{2}),
}

// devAsset is the canonical asset of the solo genesis.
var devAsset = thor.DeriveAddress([]byte("dev"), []byte("asset"))

func soloGenesis() *Genesis {
	gene := &Genesis{Name: "solo"}
	gene.Protocol.Owner = devAccounts[0].String()
	gene.Protocol.Asset = devAsset.String()
	for _, acc := range devAccounts {
		gene.Allocations = append(gene.Allocations, Allocation{
			Account: acc.String(),
			Amount:  1_000_000_000_000,
		})
	}
	return gene
}
