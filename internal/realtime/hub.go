// Package realtime fans domain events out to connected dashboard
// clients over websockets. Delivery is best effort: a client that
// cannot drain its send buffer is detached rather than slowing the
// rest of the hub down.
package realtime

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Hub struct {
	mu      sync.RWMutex
	topics  map[string]map[*Client]struct{}
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[*Client]struct{}),
	}
}

// Attach registers the client. Clients start subscribed to every
// topic; they can narrow the set with subscribe/unsubscribe commands.
func (h *Hub) Attach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}

	log.Info().Str("remote", c.remote).Msg("realtime client attached")
}

func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}

	for topic := range c.subscribed {
		h.unsubscribeLocked(c, topic)
	}

	delete(h.clients, c)
	c.close()

	log.Info().Str("remote", c.remote).Msg("realtime client detached")
}

func (h *Hub) Subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}

	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) Unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.unsubscribeLocked(c, topic)
}

func (h *Hub) unsubscribeLocked(c *Client, topic string) {
	if subscribers, ok := h.topics[topic]; ok {
		delete(subscribers, c)

		if len(subscribers) == 0 {
			delete(h.topics, topic)
		}
	}

	delete(c.subscribed, topic)
}

// Broadcast delivers the payload to every subscriber of the topic and
// to clients with no explicit subscriptions (the default firehose).
// A client with a full send buffer is detached asynchronously.
func (h *Hub) Broadcast(topic string, payload []byte) {
	h.mu.RLock()

	targets := make([]*Client, 0, len(h.clients))

	for c := range h.clients {
		if len(c.subscribed) == 0 {
			targets = append(targets, c)
		}
	}

	for c := range h.topics[topic] {
		targets = append(targets, c)
	}

	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			log.Warn().Str("remote", c.remote).Str("topic", topic).Msg("realtime send buffer full, detaching client")

			go h.Detach(c)
		}
	}
}

// ClientCount reports currently attached clients, used by health checks.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
