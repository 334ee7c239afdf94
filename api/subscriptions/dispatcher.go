// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	"github.com/vechain/rewardpool/ledger"
)

// dispatcher fans the ledger deposit feed out to websocket listeners.
type dispatcher struct {
	ledger    *ledger.Ledger
	listeners map[chan *ledger.Receipt]struct{}
	mu        sync.RWMutex
}

func newDispatcher(l *ledger.Ledger) *dispatcher {
	return &dispatcher{
		ledger:    l,
		listeners: make(map[chan *ledger.Receipt]struct{}),
	}
}

func (d *dispatcher) Subscribe(ch chan *ledger.Receipt) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[ch] = struct{}{}
}

func (d *dispatcher) Unsubscribe(ch chan *ledger.Receipt) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.listeners, ch)
}

// DispatchLoop forwards receipts until done is closed. The ledger subscription
// is taken before returning started, so no deposit committed afterwards is missed.
func (d *dispatcher) DispatchLoop(started chan<- struct{}, done <-chan struct{}) {
	receiptCh := make(chan *ledger.Receipt, 16)
	sub := d.ledger.SubscribeDeposits(receiptCh)
	defer sub.Unsubscribe()
	close(started)

	for {
		select {
		case r := <-receiptCh:
			d.mu.RLock()
			for lsn := range d.listeners {
				select {
				case lsn <- r:
				default: // a slow listener misses receipts rather than stalling deposits
				}
			}
			d.mu.RUnlock()
		case <-sub.Err():
			return
		case <-done:
			return
		}
	}
}
