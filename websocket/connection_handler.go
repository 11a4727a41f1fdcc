// websocket/connection_handler.go
package websocket

import (
	"net/http"
)

// HandleConnections переводит запрос в WebSocket-соединение и регистрирует клиента
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		manager.logger.Warn("Ошибка при установке WebSocket-соединения: %v", err)
		return
	}

	client := &Client{
		ID:     manager.nextID.Add(1),
		Socket: conn,
		Send:   make(chan []byte, sendBufferSize),
	}

	select {
	case manager.register <- client:
	case <-manager.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(manager)
}
