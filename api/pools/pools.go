// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/thor"
)

type Pools struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Pools {
	return &Pools{ledger}
}

func (p *Pools) handleListPools(w http.ResponseWriter, _ *http.Request) error {
	pools, err := p.ledger.Pools()
	if err != nil {
		return err
	}
	result := make([]*Pool, 0, len(pools))
	for _, pl := range pools {
		result = append(result, convertPool(pl))
	}
	return utils.WriteJSON(w, result)
}

func (p *Pools) handleOpenPool(w http.ResponseWriter, req *http.Request) error {
	var body OpenRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	var asset thor.Address
	if body.Asset != nil {
		asset = *body.Asset
	}
	opened, err := p.ledger.Open(body.Owner, asset, body.PeriodEnd, body.TotalReward)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPool(opened))
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	pl, err := p.ledger.Pool(asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPool(pl))
}

func (p *Pools) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	var body DepositRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	receipt, err := p.ledger.Deposit(body.User, asset, body.Amount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func (p *Pools) handleListPositions(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	if _, err := p.ledger.Pool(asset); err != nil {
		return err
	}
	positions, err := p.ledger.Positions(asset)
	if err != nil {
		return err
	}
	result := make([]*Position, 0, len(positions))
	for _, pos := range positions {
		result = append(result, convertPosition(pos))
	}
	return utils.WriteJSON(w, result)
}

func (p *Pools) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	user, err := utils.AddressVar(req, "user")
	if err != nil {
		return err
	}
	pos, err := p.ledger.Position(asset, user)
	if err != nil {
		return err
	}
	pending, err := p.ledger.Pending(asset, user)
	if err != nil {
		return err
	}
	result := convertPosition(pos)
	result.Pending = &pending
	return utils.WriteJSON(w, result)
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleListPools))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleOpenPool))
	sub.Path("/{asset}").
		Methods(http.MethodGet).
		Name("GET /pools/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{asset}/deposits").
		Methods(http.MethodPost).
		Name("POST /pools/{asset}/deposits").
		HandlerFunc(utils.WrapHandlerFunc(p.handleDeposit))
	sub.Path("/{asset}/positions").
		Methods(http.MethodGet).
		Name("GET /pools/{asset}/positions").
		HandlerFunc(utils.WrapHandlerFunc(p.handleListPositions))
	sub.Path("/{asset}/positions/{user}").
		Methods(http.MethodGet).
		Name("GET /pools/{asset}/positions/{user}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
}
