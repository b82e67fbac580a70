package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane/webtop/internal/shared/types"
)

func newTestStream(t *testing.T) (*Hub, *websocket.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil, nil)
	router := gin.New()
	router.GET("/stream", hub.HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// Wait for the hub to register the client.
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	return hub, conn
}

func TestEmitReachesClient(t *testing.T) {
	hub, conn := newTestStream(t)

	hub.Emit(types.Event{
		ID:       "evt_01",
		Type:     types.EventWindowCreated,
		WindowID: "win_01",
		Payload:  map[string]interface{}{"title": "Calculator"},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event types.Event
	require.NoError(t, sonic.Unmarshal(data, &event))
	assert.Equal(t, types.EventWindowCreated, event.Type)
	assert.Equal(t, "win_01", event.WindowID)
	assert.Equal(t, "Calculator", event.Payload["title"])
}

func TestEmitFansOut(t *testing.T) {
	hub, first := newTestStream(t)

	// Attach a second shell to the same hub.
	router := gin.New()
	router.GET("/stream", hub.HandleConnection)
	srv := httptest.NewServer(router)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 2
	}, time.Second, 10*time.Millisecond)

	hub.Emit(types.Event{ID: "evt_02", Type: types.EventWindowClosed, WindowID: "win_02"})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var event types.Event
		require.NoError(t, sonic.Unmarshal(data, &event))
		assert.Equal(t, types.EventWindowClosed, event.Type)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, conn := newTestStream(t)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)

	// Emitting with no clients is a no-op.
	hub.Emit(types.Event{ID: "evt_03", Type: types.EventWindowMoved})
}
