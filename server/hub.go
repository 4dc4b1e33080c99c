// Package server bridges one local game session to a browser UI over a
// websocket. The session stays in-process and authoritative; the socket
// only carries the same mutation requests the UI would make directly.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"ur/engine"
)

const (
	writeTimeout = 5 * time.Second
	sendBuffer   = 32
)

// Msg is the wire envelope in both directions.
type Msg struct {
	T string          `json:"t"`
	M json.RawMessage `json:"m,omitempty"`
}

type pieceMsg struct {
	Piece int `json:"piece"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans engine events out to connected clients and maps inbound
// messages onto the session mutation API.
type Hub struct {
	game    *engine.Game
	origins []string

	mu      sync.Mutex
	clients map[*client]struct{}
}

func New(g *engine.Game, allowOrigins []string) *Hub {
	return &Hub{
		game:    g,
		origins: allowOrigins,
		clients: map[*client]struct{}{},
	}
}

// Run pumps engine events to all clients until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	id, events := h.game.Subscribe()
	defer h.game.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(Msg{T: "state", M: marshalEvent(e)})
			if err != nil {
				log.Error().Err(err).Msg("marshal state event")
				continue
			}
			h.broadcast(data)
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow consumer; it will resync from the next event.
		}
	}
}

func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: h.origins,
		})
		if err != nil {
			log.Warn().Err(err).Msg("websocket accept failed")
			return
		}
		c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
		h.mu.Lock()
		h.clients[c] = struct{}{}
		h.mu.Unlock()

		ctx := r.Context()
		go h.writePump(ctx, c)
		h.readPump(ctx, c)

		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	})
}

func (h *Hub) writePump(ctx context.Context, c *client) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(ctx context.Context, c *client) {
	// Greet with the current state so late joiners are in sync.
	if data, err := json.Marshal(Msg{T: "state", M: marshalSnapshot(h.game.Snapshot())}); err == nil {
		select {
		case c.send <- data:
		default:
		}
	}

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}
		var msg Msg
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("bad client message")
			continue
		}
		h.dispatch(c, msg)
	}
}

// dispatch maps a client request onto the mutation API. Rejected requests
// are dropped silently, mirroring the engine contract: the UI simply does
// not advance.
func (h *Hub) dispatch(c *client, msg Msg) {
	switch msg.T {
	case "start":
		h.game.Start()
	case "roll":
		h.game.RollDice()
	case "select":
		var p pieceMsg
		if json.Unmarshal(msg.M, &p) == nil {
			h.game.SelectPiece(p.Piece)
		}
	case "move":
		var p pieceMsg
		if json.Unmarshal(msg.M, &p) == nil {
			h.game.MovePiece(p.Piece)
		}
	case "pass":
		h.game.PassTurn()
	case "reset":
		h.game.ResetGame()
	case "state":
		if data, err := json.Marshal(Msg{T: "state", M: marshalSnapshot(h.game.Snapshot())}); err == nil {
			select {
			case c.send <- data:
			default:
			}
		}
	default:
		log.Debug().Str("type", msg.T).Msg("unknown client message")
	}
}
