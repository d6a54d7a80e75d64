package realtime

import (
	"sync"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
	"github.com/gofiber/websocket/v2"
)

// Event names mirrored by the frontend for live refresh
const (
	EventDisasterUpdated = "disaster_updated"
	EventReportUpdated   = "report_updated"
	EventResourceUpdated = "resource_updated"
)

// message is the wire envelope broadcast to every connected client
type message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub fans mutation events out to connected websocket clients.
// Fire-and-forget: no acknowledgment, no persistence, a failed write
// just drops the client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// Handler returns the fiber handler that owns a client connection for
// its lifetime
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		log := logger.GetLogger("realtime")

		h.register(conn)
		log.Infof("Client connected (%d active)", h.ClientCount())

		// Reads are discarded; the channel is output-only. The loop exits
		// when the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.unregister(conn)
		log.Infof("Client disconnected (%d active)", h.ClientCount())
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// ClientCount reports the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Emit broadcasts an event to every connected client, best effort.
// Clients whose write fails are dropped.
func (h *Hub) Emit(event string, payload interface{}) {
	msg := message{Event: event, Payload: payload}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}
