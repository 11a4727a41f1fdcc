package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/housing_macro/ETL/utils"
)

func startManager(t *testing.T) (*Manager, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	manager := NewManager(utils.NewNopLogger())
	go manager.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(manager.HandleConnections))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return manager, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestBroadcastDatasetUpdated(t *testing.T) {
	manager, url := startManager(t)
	first := dial(t, url)
	second := dial(t, url)

	require.Eventually(t, func() bool { return manager.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	manager.BroadcastDatasetUpdated(42, "v1")

	for _, conn := range []*websocket.Conn{first, second} {
		assert.Equal(t, Message{Type: MessageDatasetUpdated, Rows: 42, Version: "v1"}, readMessage(t, conn))
	}
}

func TestPingPong(t *testing.T) {
	manager, url := startManager(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))
	assert.Equal(t, MessagePong, readMessage(t, conn).Type)

	// Некорректный JSON игнорируется, соединение остаётся открытым
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))
	assert.Equal(t, MessagePong, readMessage(t, conn).Type)
}

func TestClientDisconnect(t *testing.T) {
	manager, url := startManager(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return manager.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// Рассылка без клиентов не блокируется
	manager.BroadcastDatasetUpdated(1, "v2")
}

func TestManagerStopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	manager := NewManager(utils.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		manager.Run(ctx)
		close(stopped)
	}()

	server := httptest.NewServer(http.HandlerFunc(manager.HandleConnections))
	defer server.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(server.URL, "http"))
	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-stopped

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "соединение закрыто сервером")
	assert.Equal(t, 0, manager.ClientCount())

	// После остановки уведомления не блокируют вызывающего
	manager.BroadcastDatasetUpdated(1, "v3")
}
