// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the connected dashboard clients, keyed by account email. HR
// dashboards connect to receive request lifecycle events without polling.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection for the given email, replacing any stale
// one.
func (h *Hub) Register(email string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[email] = conn
	log.Printf("WebSocket client registered: %s", email)
}

func (h *Hub) Unregister(email string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[email]; ok {
		delete(h.clients, email)
		log.Printf("WebSocket client unregistered: %s", email)
	}
}

// Send delivers a raw message to one client. An offline client is not an
// error; the dashboard catches up from the REST API on reconnect.
func (h *Hub) Send(email string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[email]
	if !ok {
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Notify marshals a lifecycle event and sends it to one client.
func (h *Hub) Notify(email, event string, payload interface{}) {
	message, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("Failed to marshal %s notification: %v", event, err)
		return
	}
	if err := h.Send(email, message); err != nil {
		log.Printf("Failed to push %s notification to %s: %v", event, email, err)
	}
}
