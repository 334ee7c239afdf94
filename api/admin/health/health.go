// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/clock"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/reverts"
)

type Status struct {
	Healthy     bool   `json:"healthy"`
	Database    bool   `json:"database"`
	Initialized bool   `json:"initialized"`
	ClockOffset string `json:"clockOffset"`
	Time        uint64 `json:"time"`
}

type Health struct {
	ledger *ledger.Ledger
	offset func() time.Duration
}

// New creates a health probe. offset reports the correction applied to the clock, nil if none.
func New(l *ledger.Ledger, offset func() time.Duration) *Health {
	return &Health{ledger: l, offset: offset}
}

// Status probes the database and the clock. The ledger is healthy when its
// database answers and the clock offset does not exceed maxClockOffset.
func (h *Health) Status(maxClockOffset time.Duration) (*Status, error) {
	status := &Status{Time: h.ledger.Now()}

	_, err := h.ledger.Protocol()
	switch {
	case err == nil:
		status.Database = true
		status.Initialized = true
	case reverts.Is(err, reverts.NotInitialized):
		status.Database = true
	}

	var offset time.Duration
	if h.offset != nil {
		offset = h.offset()
	}
	status.ClockOffset = common.PrettyDuration(offset).String()

	status.Healthy = status.Database && offset <= maxClockOffset && offset >= -maxClockOffset
	return status, nil
}

// handleGetHealth answers 503 with the status body when the ledger is unhealthy.
func (h *Health) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	maxClockOffset := clock.MaxOffset
	if query := r.URL.Query().Get("maxClockOffset"); query != "" {
		parsed, err := time.ParseDuration(query)
		if err != nil {
			return utils.BadRequest(err)
		}
		maxClockOffset = parsed
	}

	status, err := h.Status(maxClockOffset)
	if err != nil {
		return err
	}
	if !status.Healthy {
		w.Header().Set("Content-Type", utils.JSONContentType)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (h *Health) Mount(root *mux.Router, pathPrefix string) {
	root.Path(pathPrefix).
		Methods(http.MethodGet).
		Name("GET /admin/health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
