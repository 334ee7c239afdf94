// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/thor"
)

type Balance struct {
	Asset   thor.Address `json:"asset"`
	Account thor.Address `json:"account"`
	Balance uint64       `json:"balance"`
}

type Custody struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Custody {
	return &Custody{ledger}
}

func (c *Custody) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	account, err := utils.AddressVar(req, "account")
	if err != nil {
		return err
	}
	bal, err := c.ledger.Balance(asset, account)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{asset, account, bal})
}

func (c *Custody) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{asset}/{account}").
		Methods(http.MethodGet).
		Name("GET /custody/{asset}/{account}").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetBalance))
}
