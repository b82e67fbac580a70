// Package ws pushes desktop events to connected browser shells over
// WebSocket. The hub fans every window and app event out to all
// clients; the frontend reconciles its render state against them.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/glasspane/webtop/internal/infrastructure/logging"
	"github.com/glasspane/webtop/internal/infrastructure/monitoring"
	"github.com/glasspane/webtop/internal/shared/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Shell origin enforcement happens at the CORS layer.
	},
}

// Hub broadcasts desktop events to every connected shell.
type Hub struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics

	mu      sync.RWMutex
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewHub creates an event hub.
func NewHub(logger *logging.Logger, metrics *monitoring.Metrics) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		logger:  logger,
		metrics: metrics,
		clients: make(map[string]*client),
	}
}

// Emit broadcasts one event to all connected shells. Slow clients are
// disconnected rather than allowed to stall the desktop.
func (h *Hub) Emit(event types.Event) {
	data, err := sonic.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return
	}

	if h.metrics != nil {
		h.metrics.WSEvents.Inc()
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Dropping slow client", zap.String("client_id", c.id))
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected shells.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleConnection upgrades an HTTP request and serves the event
// stream until the client disconnects.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
	}
	h.logger.Info("Shell connected", zap.String("client_id", cl.id))

	go h.writeLoop(cl)
	h.readLoop(cl)
}

// readLoop discards inbound frames; the stream is server-to-client.
// It exists to process pongs and detect disconnects.
func (h *Hub) readLoop(cl *client) {
	defer h.remove(cl)

	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(cl)
	}()

	for {
		select {
		case data := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	_, present := h.clients[cl.id]
	delete(h.clients, cl.id)
	h.mu.Unlock()

	// The send channel is never closed; closing the connection makes
	// the writer's next write fail and ends both loops.
	cl.once.Do(func() {
		_ = cl.conn.Close()
	})

	if present {
		if h.metrics != nil {
			h.metrics.WSConnections.Dec()
		}
		h.logger.Info("Shell disconnected", zap.String("client_id", cl.id))
	}
}
