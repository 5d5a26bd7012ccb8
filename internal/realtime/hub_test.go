package realtime_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa/internal/realtime"
)

// newHubServer upgrades every request and wires the connection into
// the hub the same way the websocket handler does.
func newHubServer(t *testing.T, hub *realtime.Hub) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		client := realtime.NewClient(hub, conn, 8)
		hub.Attach(client)

		go client.WritePump()
		go client.ReadPump()
	}))

	t.Cleanup(server.Close)

	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	defer resp.Body.Close()

	t.Cleanup(func() { conn.Close() })

	return conn
}

func waitForClients(t *testing.T, hub *realtime.Hub, want int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return hub.ClientCount() == want
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesFirehoseClients(t *testing.T) {
	hub := realtime.NewHub()
	server := newHubServer(t, hub)

	conn := dial(t, server)
	waitForClients(t, hub, 1)

	// No explicit subscriptions: the client receives every topic.
	hub.Broadcast("tables.occupancy", []byte(`{"occupied":2}`))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"occupied":2}`, string(payload))
}

func TestHub_SubscribeNarrowsTheTopicSet(t *testing.T) {
	hub := realtime.NewHub()
	server := newHubServer(t, hub)

	conn := dial(t, server)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.WriteJSON(realtime.Command{Action: "subscribe", Topic: "reservation.created"}))

	// Give the read pump a moment to process the command.
	time.Sleep(300 * time.Millisecond)

	hub.Broadcast("reservation.cancelled", []byte(`{"ignored":true}`))
	hub.Broadcast("reservation.created", []byte(`{"wanted":true}`))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// The unsubscribed topic is never enqueued, so the first frame is
	// the subscribed one.
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"wanted":true}`, string(payload))
}

func TestHub_DetachOnDisconnect(t *testing.T) {
	hub := realtime.NewHub()
	server := newHubServer(t, hub)

	first := dial(t, server)
	dial(t, server)
	waitForClients(t, hub, 2)

	require.NoError(t, first.Close())
	waitForClients(t, hub, 1)
}

// Broadcast holds client references outside the hub lock, so a client
// detaching mid-fanout must not take the whole broadcast down with it.
func TestHub_BroadcastDuringDetachDoesNotPanic(t *testing.T) {
	hub := realtime.NewHub()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	// A one-slot buffer keeps the full-buffer detach path hot.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		client := realtime.NewClient(hub, conn, 1)
		hub.Attach(client)

		go client.WritePump()
		go client.ReadPump()
	}))

	t.Cleanup(server.Close)

	conns := make([]*websocket.Conn, 0, 4)
	for i := 0; i < 4; i++ {
		conns = append(conns, dial(t, server))
	}

	waitForClients(t, hub, 4)

	stop := make(chan struct{})

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			select {
			case <-stop:
				return
			default:
				hub.Broadcast("tables.occupancy", []byte(`{"occupied":1}`))
			}
		}
	}()

	for _, conn := range conns {
		conn.Close()
	}

	waitForClients(t, hub, 0)

	close(stop)
	wg.Wait()
}

func TestHub_ClientCountStartsEmpty(t *testing.T) {
	hub := realtime.NewHub()

	assert.Equal(t, 0, hub.ClientCount())
}
