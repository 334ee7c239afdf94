// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/ledger"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/thor"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	listenerBuffer = 64
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 7 / 10
)

type Subscriptions struct {
	upgrader   *websocket.Upgrader
	dispatcher *dispatcher
	done       chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// New starts dispatching the deposits of l. Websocket handshakes are accepted
// from allowedOrigins, "*" accepts any.
func New(l *ledger.Ledger, allowedOrigins []string) *Subscriptions {
	s := &Subscriptions{
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == strings.ToLower(origin) || allowed == strings.ToLower(u.Host) {
						return true
					}
				}
				return false
			},
		},
		dispatcher: newDispatcher(l),
		done:       make(chan struct{}),
	}

	started := make(chan struct{})
	s.wg.Go(func() {
		s.dispatcher.DispatchLoop(started, s.done)
	})
	<-started
	return s
}

// depositFilter matches receipts. Nil fields match everything.
type depositFilter struct {
	asset *thor.Address
	user  *thor.Address
}

func (f *depositFilter) match(r *ledger.Receipt) bool {
	if f.asset != nil && *f.asset != r.Asset {
		return false
	}
	if f.user != nil && *f.user != r.User {
		return false
	}
	return true
}

func parseFilter(req *http.Request) (*depositFilter, error) {
	var f depositFilter
	query := req.URL.Query()
	for name, target := range map[string]**thor.Address{"asset": &f.asset, "user": &f.user} {
		if s := query.Get(name); s != "" {
			addr, err := thor.ParseAddress(s)
			if err != nil {
				return nil, utils.BadRequest(errors.WithMessage(err, name))
			}
			*target = addr
		}
	}
	return &f, nil
}

func (s *Subscriptions) handleSubscribeDeposits(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req)
	if err != nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader already responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Go(func() {
		defer conn.Close()
		if err := s.pipe(conn, filter); err != nil {
			logger.Debug("subscription closed", "err", err)
		}
	})
	return nil
}

// pipe writes matching receipts to conn until the peer leaves or the subscriptions close.
func (s *Subscriptions) pipe(conn *websocket.Conn, filter *depositFilter) error {
	ch := make(chan *ledger.Receipt, listenerBuffer)
	s.dispatcher.Subscribe(ch)
	defer s.dispatcher.Unsubscribe(ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case r := <-ch:
			if !filter.match(r) {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(convertReceipt(r)); err != nil {
				return err
			}
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			return conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
				time.Now().Add(writeWait),
			)
		}
	}
}

// Close ends the dispatch loop and every open subscription.
func (s *Subscriptions) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/deposits").
		Methods(http.MethodGet).
		Name("WS /subscriptions/deposits").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeDeposits))
}
