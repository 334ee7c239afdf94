// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/receiptdb"
)

type Deposits struct {
	db    *receiptdb.ReceiptDB
	limit uint64
}

func New(db *receiptdb.ReceiptDB, limit uint64) *Deposits {
	return &Deposits{
		db,
		limit,
	}
}

func (d *Deposits) filter(ctx context.Context, filter *Filter) ([]*FilteredDeposit, error) {
	deposits, err := d.db.FilterDeposits(ctx, &receiptdb.Filter{
		Asset: filter.Asset,
		User:  filter.User,
		Range: convertRange(filter.Range),
		Options: &receiptdb.Options{
			Offset: filter.Options.Offset,
			Limit:  filter.Options.Limit,
		},
		Order: filter.Order,
	})
	if err != nil {
		return nil, err
	}
	result := make([]*FilteredDeposit, len(deposits))
	for i, dep := range deposits {
		result[i] = convertDeposit(dep)
	}
	return result, nil
}

func (d *Deposits) handleFilterDeposits(w http.ResponseWriter, req *http.Request) error {
	var filter Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Order != "" && filter.Order != receiptdb.ASC && filter.Order != receiptdb.DESC {
		return utils.BadRequest(fmt.Errorf("order: want %q or %q", receiptdb.ASC, receiptdb.DESC))
	}
	if filter.Options != nil && filter.Options.Limit > d.limit {
		return utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", d.limit))
	}
	if filter.Options != nil && filter.Options.Offset > math.MaxInt64 {
		return utils.BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	if filter.Range != nil && filter.Range.From != nil && filter.Range.To != nil && *filter.Range.From > *filter.Range.To {
		return utils.BadRequest(errors.New("range.to must be greater than or equal to range.from"))
	}
	if filter.Options == nil {
		// one more than the limit detects results needing pagination
		filter.Options = &Options{
			Offset: 0,
			Limit:  d.limit + 1,
		}
	}

	result, err := d.filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	if len(result) > int(d.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered deposits exceeds the maximum allowed value of %d, please use pagination", d.limit))
	}
	return utils.WriteJSON(w, result)
}

func (d *Deposits) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /logs/deposits").
		HandlerFunc(utils.WrapHandlerFunc(d.handleFilterDeposits))
}
