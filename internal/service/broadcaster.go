package service

import (
	"log/slog"
	"sync"

	"github.com/immxrtalbeast/axenix_chat/internal/domain"
)

// Hub fans room events out to every live connection, joined or not. Delivery
// is fire-and-forget: each client has its own buffered channel and a full
// buffer drops the event for that client only. Events announced from one
// goroutine land on every channel in announce order, which preserves causal
// order per sender.
type Hub struct {
	log     *slog.Logger
	mu      sync.RWMutex
	clients map[string]*domain.Client
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:     log,
		clients: make(map[string]*domain.Client),
	}
}

// Attach registers a connection for delivery. Reports false if the
// connection was already attached.
func (h *Hub) Attach(client *domain.Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		return false
	}
	h.clients[client.ID] = client
	return true
}

// Detach stops delivery to a connection and closes its event channel.
// Idempotent.
func (h *Hub) Detach(clientID string) {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	if ok {
		delete(h.clients, clientID)
	}
	h.mu.Unlock()

	if ok {
		client.Close()
	}
}

func (h *Hub) Announce(event domain.Event) {
	h.mu.RLock()
	clients := make([]*domain.Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if !client.EnqueueEvent(event) {
			h.log.Debug("dropping broadcast event",
				slog.String("client", client.ID),
				slog.String("type", event.Type),
			)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
