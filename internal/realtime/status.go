package realtime

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// StatusHub groups websocket clients into per-branch rooms so a reservation
// mutation only wakes the viewers of that branch.
type StatusHub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]bool
}

var Status = &StatusHub{
	rooms: make(map[string]map[*websocket.Conn]bool),
}

func (h *StatusHub) Register(room string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*websocket.Conn]bool)
		h.rooms[room] = clients
	}
	clients[c] = true
}

func (h *StatusHub) Unregister(room string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	c.Close()
}

// Broadcast writes msg to every client in the room. Dead connections are
// cleaned up on their next read error, not here.
func (h *StatusHub) Broadcast(room string, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		_ = c.WriteMessage(websocket.TextMessage, msg)
	}
}

func (h *StatusHub) HasClients(room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room]) > 0
}
