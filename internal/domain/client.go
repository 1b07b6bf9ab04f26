package domain

import (
	"sync"

	"github.com/google/uuid"
)

const DefaultEventBuffer = 16

// Client represents one live connection, joined or not. Events is drained by
// a single writer goroutine owned by the transport layer.
type Client struct {
	ID     string
	Events chan Event

	mu       sync.Mutex
	closed   bool
	replayed bool
}

func NewClient(buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Client{
		ID:     uuid.New().String(),
		Events: make(chan Event, buffer),
	}
}

// EnqueueEvent delivers an event without blocking. Events for a recipient
// whose buffer is full are dropped so a slow reader never stalls the room.
func (c *Client) EnqueueEvent(event Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Events <- event:
		return true
	default:
		return false
	}
}

// Close stops event delivery. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.Events)
}

// MarkReplayed reports whether the transcript replay still has to happen for
// this connection, flipping the guard on first call.
func (c *Client) MarkReplayed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.replayed {
		return false
	}
	c.replayed = true
	return true
}
