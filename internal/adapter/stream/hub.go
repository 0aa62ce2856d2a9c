// Package stream fans wall events out to live subscribers. Delivery is
// best-effort: a disconnected or slow subscriber simply misses events,
// there is no replay or catch-up.
package stream

import (
	"sync"

	"coinwall/internal/core/domain"

	"github.com/rs/zerolog"
)

// Hub implements ports.Broadcaster as an in-process publish-subscribe
// channel. Publish never blocks: a subscriber whose buffer is full
// drops the event.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan domain.WallEvent
	nextID int
	buffer int
	closed bool
	log    zerolog.Logger
}

// NewHub creates a hub whose subscribers buffer up to buffer events.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[int]chan domain.WallEvent),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers a listener. The returned cancel function must be
// called when the listener disconnects; it closes the channel.
func (h *Hub) Subscribe() (<-chan domain.WallEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		ch := make(chan domain.WallEvent)
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	ch := make(chan domain.WallEvent, h.buffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (h *Hub) Publish(event domain.WallEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.log.Warn().Int("subscriber", id).Str("event", event.Name).Msg("subscriber buffer full, event dropped")
		}
	}
}

// Close terminates all subscriber channels. Further Subscribe calls
// return a closed channel and Publish becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
