package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/logger"
)

const (
	// writeWait bounds a single websocket write
	writeWait = 10 * time.Second
	// pongWait is how long a client may stay silent before being dropped
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait
	pingPeriod = 54 * time.Second
	// sendBuffer is the per-client outbound queue; a client that falls
	// this far behind is disconnected rather than backpressuring the hub
	sendBuffer = 64
)

// Hub fans realtime messages out to connected websocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*hubClient
	closed  bool
}

type hubClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*hubClient),
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues raw message bytes to every connected client. Clients
// whose queue is full are dropped; the projection read API is their
// recovery path.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	var slow []*hubClient
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logger.Warn("dropping slow realtime client", zap.String("client_id", c.id))
		h.remove(c)
	}
}

// HandleConnection takes ownership of an upgraded websocket connection
// and blocks until the client disconnects.
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	client := &hubClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[client.id] = client
	h.mu.Unlock()

	logger.Debug("realtime client connected", zap.String("client_id", client.id))

	go h.writePump(client)
	h.readPump(client)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*hubClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.remove(c)
	}
}

func (h *Hub) remove(c *hubClient) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// readPump discards inbound frames; the protocol is one-directional.
// Its real job is detecting disconnects and answering pings.
func (h *Hub) readPump(c *hubClient) {
	defer h.remove(c)

	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("realtime client read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
		// Inbound payloads are ignored
	}
}

func (h *Hub) writePump(c *hubClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.remove(c)
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
