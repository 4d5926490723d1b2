package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lixenwraith/vi-life/board"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// SnapshotSource provides the latest published board
type SnapshotSource interface {
	Latest() (board.Snapshot, bool)
}

// hubClient is one websocket connection with its own writer goroutine
type hubClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *hubClient) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Hub streams board snapshots to websocket clients. Publish is called from the
// game loop and never blocks; Run coalesces pending snapshots so clients see
// at most BroadcastRate messages per second carrying the newest board
type Hub struct {
	config   *Config
	logger   *zap.Logger
	metrics  *Metrics
	upgrader websocket.Upgrader

	latest atomic.Pointer[board.Snapshot]
	notify chan struct{}

	limiter *rate.Limiter

	mu      sync.RWMutex
	clients map[*hubClient]struct{}
}

// NewHub creates a hub. metrics and logger may be nil
func NewHub(cfg *Config, metrics *Metrics, logger *zap.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		config:  cfg,
		logger:  logger,
		metrics: metrics,
		notify:  make(chan struct{}, 1),
		limiter: rate.NewLimiter(rate.Limit(cfg.BroadcastRate), max(cfg.BroadcastBurst, 1)),
		clients: make(map[*hubClient]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(cfg.CORSOrigins, r.Header.Get("Origin"))
		},
	}
	return h
}

// Publish implements board.SnapshotSink
func (h *Hub) Publish(s board.Snapshot) {
	h.latest.Store(&s)
	select {
	case h.notify <- struct{}{}:
	default:
		// A broadcast is already pending and will carry this snapshot
	}
}

// Latest implements SnapshotSource
func (h *Hub) Latest() (board.Snapshot, bool) {
	p := h.latest.Load()
	if p == nil {
		return board.Snapshot{}, false
	}
	return *p, true
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run broadcasts published snapshots until ctx is done, then disconnects all clients
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.notify:
		}
		if err := h.limiter.Wait(ctx); err != nil {
			return
		}
		h.broadcastLatest()
	}
}

func (h *Hub) broadcastLatest() {
	snap, ok := h.Latest()
	if !ok {
		return
	}
	msg, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("snapshot marshal failed", zap.Error(err))
		return
	}

	sent, dropped := 0, 0
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
			sent++
		default:
			dropped++
		}
	}
	h.mu.RUnlock()
	h.metrics.addMessages(sent, dropped)
}

// HandleWebSocket upgrades the request and registers the client. The newest
// snapshot is sent immediately
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.config.MaxClients > 0 && h.ClientCount() >= h.config.MaxClients {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &hubClient{
		conn: conn,
		send: make(chan []byte, max(h.config.SendQueueSize, 1)),
	}
	if snap, ok := h.Latest(); ok {
		if msg, err := json.Marshal(snap); err == nil {
			c.send <- msg
		}
	}
	if !h.register(c) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many connections"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// register adds c unless the hub is full. The limit is checked again here
// because upgrades admitted by HandleWebSocket's early check can race
func (h *Hub) register(c *hubClient) bool {
	h.mu.Lock()
	if h.config.MaxClients > 0 && len(h.clients) >= h.config.MaxClients {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.metrics.setClients(n)
	h.logger.Debug("websocket client connected", zap.String("remote", c.conn.RemoteAddr().String()), zap.Int("clients", n))
	return true
}

func (h *Hub) unregister(c *hubClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	if !ok {
		return
	}
	c.close()
	h.metrics.setClients(n)
	h.logger.Debug("websocket client disconnected", zap.Int("clients", n))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*hubClient]struct{})
	h.mu.Unlock()
	for c := range clients {
		c.close()
	}
	h.metrics.setClients(0)
}

// writePump owns all writes on the connection
func (h *Hub) writePump(c *hubClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.unregister(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}

// readPump discards client messages and detects disconnects
func (h *Hub) readPump(c *hubClient) {
	defer h.unregister(c)
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// originAllowed matches an Origin header against the allow list. An empty
// list or "*" allows any origin; requests without Origin are not browsers
func originAllowed(allowed []string, origin string) bool {
	if origin == "" || len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
