package event

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, origins string) (*Bus, *Hub, string) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	bus := NewBus()
	hub := NewHub(log, bus, origins)
	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return bus, hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsBusEvents(t *testing.T) {
	bus, hub, url := newTestHub(t, "*")

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()

	waitForClients(t, hub, 2)
	bus.Publish(NewRefresh(TopicPermissions, "u1"))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var got Event
		require.NoError(t, conn.ReadJSON(&got))
		require.Equal(t, TypeRefresh, got.Type)
		require.Equal(t, TopicPermissions, got.Topic)
		require.Equal(t, "u1", got.UserID)
	}
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	_, hub, url := newTestHub(t, "")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	_, _, url := newTestHub(t, "http://dashboard.example.com")

	header := http.Header{}
	header.Set("Origin", "http://evil.example.com")
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "http://dashboard.example.com")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	_ = conn.Close()
}

func TestHub_CloseDetachesFromBus(t *testing.T) {
	bus := NewBus()
	hub := NewHub(logrus.New(), bus, "*")
	require.Equal(t, 1, bus.Subscribers())

	hub.Close()
	require.Zero(t, bus.Subscribers())
}
