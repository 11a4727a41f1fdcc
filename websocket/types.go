// websocket/types.go
package websocket

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// Message сообщение, которым сервер уведомляет дашборд
type Message struct {
	Type    string `json:"type"`
	Rows    int    `json:"rows,omitempty"`
	Version string `json:"version,omitempty"`
}

// Client подключенный дашборд
type Client struct {
	ID     uint64
	Socket *websocket.Conn
	Send   chan []byte
}

// directMessage ответ одному клиенту
type directMessage struct {
	client  *Client
	message []byte
}

// Manager менеджер WebSocket-соединений. Карта клиентов принадлежит горутине Run.
type Manager struct {
	clients    map[uint64]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	replies    chan directMessage
	done       chan struct{}

	nextID      atomic.Uint64
	clientCount atomic.Int64
	logger      *utils.ETLLogger
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Дашборд может открываться с другого origin
	},
}
