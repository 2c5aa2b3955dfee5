// Package hub fans decoded envelopes out to multiple local subscribers — a
// display goroutine, a shot recorder, a debug logger — from a single
// Connection reader loop.
package hub

import (
	"sync"

	"github.com/divotmaker/ironsight/conn"
	"github.com/divotmaker/ironsight/internal/logging"
	"github.com/divotmaker/ironsight/internal/metrics"
)

// BackpressurePolicy controls what happens when a subscriber's buffer is
// full at broadcast time.
type BackpressurePolicy int

const (
	// PolicyDrop discards the envelope for that subscriber only.
	PolicyDrop BackpressurePolicy = iota
	// PolicyKick closes the subscriber so its reader can detect
	// disconnection and clean up.
	PolicyKick
)

// Client is a single subscriber's inbox.
type Client struct {
	Out       chan conn.Envelope
	Closed    chan struct{}
	closeOnce sync.Once
}

// Close signals the client is closed (idempotent).
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Closed)
	})
}

// Hub fans out envelopes to every registered Client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	Policy  BackpressurePolicy
}

// New creates a Hub with the drop backpressure policy.
func New() *Hub { return &Hub{clients: make(map[*Client]struct{})} }

// Add registers a subscriber.
func (h *Hub) Add(c *Client) {
	h.mu.Lock()
	prev := len(h.clients)
	h.clients[c] = struct{}{}
	cur := len(h.clients)
	h.mu.Unlock()
	metrics.HubActiveClients.Set(float64(cur))
	if prev == 0 && cur == 1 {
		logging.L().Info("hub_first_subscriber")
	}
}

// Remove unregisters a subscriber; safe to call more than once.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	_, existed := h.clients[c]
	if existed {
		delete(h.clients, c)
	}
	cur := len(h.clients)
	h.mu.Unlock()
	select {
	case <-c.Closed:
	default:
		c.Close()
	}
	metrics.HubActiveClients.Set(float64(cur))
	if existed && cur == 0 {
		logging.L().Info("hub_last_subscriber_removed")
	}
}

// Broadcast delivers env to every subscriber, honoring the backpressure
// policy for any subscriber whose buffer is full.
func (h *Hub) Broadcast(env conn.Envelope) {
	clients := h.Snapshot()
	metrics.HubBroadcastFanout.Set(float64(len(clients)))
	for _, c := range clients {
		select {
		case c.Out <- env:
		default:
			if h.Policy == PolicyKick {
				metrics.HubKickedClients.Inc()
				c.Close()
			} else {
				metrics.HubDroppedEnvelopes.Inc()
			}
		}
	}
}

// Snapshot returns a slice copy of current subscribers.
func (h *Hub) Snapshot() []*Client {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	return clients
}

// Count returns the number of active subscribers.
func (h *Hub) Count() int { h.mu.RLock(); n := len(h.clients); h.mu.RUnlock(); return n }
