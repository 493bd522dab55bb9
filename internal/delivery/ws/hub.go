// Package ws pushes board updates to websocket subscribers.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"resty_chess/internal/domain/board"
	"resty_chess/internal/domain/journal"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	sendBuffer      = 64
	broadcastBuffer = 64
)

const EventState = "state"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is what subscribers receive. Entry is absent for the initial state message.
type Message struct {
	Event string          `json:"event"`
	Entry *journal.Entry  `json:"entry,omitempty"`
	Board *board.Snapshot `json:"board"`
}

// StateSource hands out the current board while holding off mutations, so a
// new subscriber can be registered without missing or repeating an update.
type StateSource interface {
	WithState(fn func(board.Snapshot))
}

type update struct {
	seq uint64
	raw []byte
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// updates up to since are already part of the initial state
	since uint64
}

// Hub fans board updates out to every connected client. A client that cannot
// keep up is disconnected instead of slowing the board down.
type Hub struct {
	log        *zap.SugaredLogger
	clients    map[*client]struct{}
	broadcast  chan update
	seq        atomic.Uint64
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan update, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case u := <-h.broadcast:
			for c := range h.clients {
				if u.seq <= c.since {
					continue
				}
				select {
				case c.send <- u.raw:
				default:
					h.log.Warn("websocket client too slow, disconnecting")
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// Notify broadcasts a mutation. Callers serialize Notify with their
// mutations; the update order is the order of the calls. It waits only for
// the hub loop, which never blocks on a client, and returns immediately once the
// hub has stopped.
func (h *Hub) Notify(entry journal.Entry, snap board.Snapshot) {
	raw, err := json.Marshal(Message{Event: entry.Action, Entry: &entry, Board: &snap})
	if err != nil {
		h.log.Errorf("failed to marshal board update: %v", err)
		return
	}
	select {
	case h.broadcast <- update{seq: h.seq.Add(1), raw: raw}:
	case <-h.done:
	}
}

// ServeWS upgrades the request. The first message is the state taken from
// source; every later message is an update applied after that state.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, source StateSource) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	registered := false
	source.WithState(func(initial board.Snapshot) {
		raw, err := json.Marshal(Message{Event: EventState, Board: &initial})
		if err != nil {
			h.log.Errorf("failed to marshal board state: %v", err)
			return
		}
		c.send <- raw
		c.since = h.seq.Load()
		select {
		case h.register <- c:
			registered = true
		case <-h.done:
		}
	})
	if !registered {
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// readPump only watches for the peer going away; inbound messages are ignored.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
