package sse

import (
	"sync"

	"github.com/pallet-insight/pallet-insight/internal/domain/alert"
)

// Hub manages SSE clients subscribed to run progress and alert events.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*alert.SSEClient
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*alert.SSEClient),
	}
}

func (h *Hub) Register(client *alert.SSEClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ClientID] = client
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		c.Close()
		delete(h.clients, clientID)
	}
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) BroadcastToAll(message *alert.SSEMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		trySend(c, message)
	}
}

func (h *Hub) SendToClient(clientID string, message *alert.SSEMessage) error {
	h.mu.RLock()
	c := h.clients[clientID]
	h.mu.RUnlock()
	if c == nil {
		return alert.ErrClientNotFound
	}
	if !trySend(c, message) {
		return alert.ErrChannelFull
	}
	return nil
}

func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

func trySend(c *alert.SSEClient, msg *alert.SSEMessage) bool {
	select {
	case c.MessageChan <- msg:
		return true
	default:
		return false
	}
}
