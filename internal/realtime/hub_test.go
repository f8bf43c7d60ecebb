package realtime

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	identify := func(_ context.Context, token string) (uint, bool) {
		if token == "good" {
			return 7, true
		}
		return 0, false
	}
	hub := NewHub(identify, zerolog.Nop())
	go hub.Run()

	r := gin.New()
	r.GET("/ws", hub.Handle)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestHub_BroadcastsTextToEveryone(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)

	assert.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("hello")))

	assert.Equal(t, "hello", read(t, a))
	assert.Equal(t, "hello", read(t, b))
}

func TestHub_SendToUser(t *testing.T) {
	hub, url := startHub(t)
	authed := dial(t, url+"?token=good")
	dial(t, url+"?token=bad")

	assert.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.SendToUser(7, map[string]string{"title": "Welcome"}))
	assert.JSONEq(t, `{"title":"Welcome"}`, read(t, authed))
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)

	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())
	go hub.Run()

	hub.Close()
	hub.Close()
	hub.Broadcast([]byte("ignored"))
	assert.NoError(t, hub.SendToUser(1, "ignored"))
}
