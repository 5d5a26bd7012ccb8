package realtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 16
)

const (
	commandSubscribe   = "subscribe"
	commandUnsubscribe = "unsubscribe"
)

// Command is the only inbound message shape clients may send.
type Command struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	done       chan struct{}
	remote     string
	subscribed map[string]struct{}
	closeOnce  sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, bufferSize int) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, bufferSize),
		done:       make(chan struct{}),
		remote:     conn.RemoteAddr().String(),
		subscribed: make(map[string]struct{}),
	}
}

// close signals WritePump through the done channel. The send channel
// is never closed: Broadcast may still be holding a reference to a
// detached client, and a send to a live buffered channel is harmless
// where a send to a closed one panics.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)

		if err := c.conn.Close(); err != nil {
			log.Debug().Err(err).Str("remote", c.remote).Msg("realtime connection close")
		}
	})
}

// WritePump drains the send buffer onto the connection and keeps the
// peer alive with periodic pings. Runs as its own goroutine per client.
func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Warn().Err(err).Str("remote", c.remote).Msg("realtime write failed")

				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// ReadPump consumes subscribe/unsubscribe commands until the peer
// disconnects, then detaches the client from the hub.
func (c *Client) ReadPump() {
	defer c.hub.Detach(c)

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd Command

		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Str("remote", c.remote).Msg("realtime read failed")
			}

			return
		}

		c.handleCommand(cmd)
	}
}

func (c *Client) handleCommand(cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}

	switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
	case commandSubscribe:
		c.hub.Subscribe(c, topic)
	case commandUnsubscribe:
		c.hub.Unsubscribe(c, topic)
	}
}
