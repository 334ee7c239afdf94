// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package protocol

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/thor"
)

type InitRequest struct {
	Owner        thor.Address `json:"owner"`
	FeeRecipient thor.Address `json:"feeRecipient"`
	Asset        thor.Address `json:"asset"`
}

type Protocol struct {
	Owner        thor.Address `json:"owner"`
	FeeRecipient thor.Address `json:"feeRecipient"`
	Fee          uint64       `json:"fee"`
	FeePrecision uint64       `json:"feePrecision"`
	Asset        thor.Address `json:"asset"`
}

func convertProtocol(p *ledger.Protocol) *Protocol {
	return &Protocol{
		Owner:        p.Owner,
		FeeRecipient: p.FeeRecipient,
		Fee:          p.Fee,
		FeePrecision: ledger.FeePrecision,
		Asset:        p.Asset,
	}
}

type API struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *API {
	return &API{ledger}
}

func (a *API) handleGetProtocol(w http.ResponseWriter, _ *http.Request) error {
	p, err := a.ledger.Protocol()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertProtocol(p))
}

func (a *API) handleInitProtocol(w http.ResponseWriter, req *http.Request) error {
	var body InitRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	p, err := a.ledger.InitProtocol(body.Owner, body.FeeRecipient, body.Asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertProtocol(p))
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /protocol").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetProtocol))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /protocol").
		HandlerFunc(utils.WrapHandlerFunc(a.handleInitProtocol))
}
