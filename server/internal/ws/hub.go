package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/launchdash/launchdash/pkg/types"
	"github.com/launchdash/launchdash/server/internal/api"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/query"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16

	// maxFrameSize bounds a single inbound select frame.
	maxFrameSize = 1024
)

// Event names used in the message envelope.
const (
	EventView   = "view"
	EventError  = "error"
	EventSelect = "select"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// Allow all origins; callers should apply CORS at the reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// ErrorData is the payload of an "error" event. Selection is the client's
// selection, which the rejected request left unchanged.
type ErrorData struct {
	Message   string          `json:"message"`
	Selection types.Selection `json:"selection"`
}

// SelectRequest is the payload of a client "select" frame. Omitted fields keep
// the client's current value.
type SelectRequest struct {
	Site string   `json:"site,omitempty"`
	Low  *float64 `json:"low,omitempty"`
	High *float64 `json:"high,omitempty"`
}

// inbound is the envelope read from clients.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub manages WebSocket client connections. Every client holds its own
// selection and receives a fresh view each time it changes it.
type Hub struct {
	ds      *dataset.Dataset
	metrics *metrics.Metrics

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected WebSocket client.
type client struct {
	conn *websocket.Conn
	send chan []byte

	// sel is only touched by the client's read goroutine.
	sel types.Selection
}

// New creates a Hub that answers selections from ds. m may be nil.
func New(ds *dataset.Dataset, m *metrics.Metrics) *Hub {
	return &Hub{
		ds:      ds,
		metrics: m,
		clients: make(map[*client]struct{}),
	}
}

// Run blocks until ctx is cancelled, then closes all active connections.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the client.
// It sends the view for the default selection immediately on connect, then
// answers select frames until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufSize),
		sel:  query.DefaultSelection(h.ds),
	}
	h.register(c)
	defer h.unregister(c)

	h.sendView(c)

	go c.writePump()
	h.readPump(c) // blocks until connection closes
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.ClientConnected()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.metrics.ClientDisconnected()
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
		h.metrics.ClientDisconnected()
	}
}

// handle applies one inbound frame to c.
func (h *Hub) handle(c *client, frame []byte) {
	var in inbound
	if err := json.Unmarshal(frame, &in); err != nil {
		h.sendError(c, fmt.Errorf("malformed frame: %w", err))
		return
	}
	if in.Event != EventSelect {
		h.sendError(c, fmt.Errorf("unknown event %q", in.Event))
		return
	}
	var req SelectRequest
	if err := json.Unmarshal(in.Data, &req); err != nil {
		h.sendError(c, fmt.Errorf("malformed select: %w", err))
		return
	}

	next := c.sel
	if req.Site != "" {
		next.Site = req.Site
	}
	if req.Low != nil {
		next.Payload.Low = *req.Low
	}
	if req.High != nil {
		next.Payload.High = *req.High
	}
	if err := query.ValidateSelection(h.ds, next); err != nil {
		h.sendError(c, err)
		return
	}
	c.sel = next
	slog.Debug("ws: selection changed", "site", next.Site, "low", next.Payload.Low, "high", next.Payload.High)
	h.sendView(c)
}

func (h *Hub) sendView(c *client) {
	h.push(c, Message{Event: EventView, Data: api.BuildView(h.ds, c.sel, h.metrics)})
}

func (h *Hub) sendError(c *client, err error) {
	h.push(c, Message{Event: EventError, Data: ErrorData{Message: err.Error(), Selection: c.sel}})
}

// push queues msg for c. A client whose buffer is full is disconnected.
func (h *Hub) push(c *client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("ws: marshal failed", "event", msg.Event, "err", err)
		return
	}

	h.mu.RLock()
	_, live := h.clients[c]
	full := false
	if live {
		select {
		case c.send <- data:
		default:
			full = true
		}
	}
	h.mu.RUnlock()

	if full {
		slog.Warn("ws: client send buffer full, disconnecting")
		h.unregister(c)
	}
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads select frames and control messages until the connection
// closes.
func (h *Hub) readPump(c *client) {
	defer c.conn.Close()
	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		h.handle(c, frame)
	}
}
