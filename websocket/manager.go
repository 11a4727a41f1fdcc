// websocket/manager.go
package websocket

import (
	"context"
	"encoding/json"

	"github.com/LilVoxy/housing_macro/ETL/utils"
)

// NewManager создает менеджер WebSocket-соединений
func NewManager(logger *utils.ETLLogger) *Manager {
	return &Manager{
		clients:    make(map[uint64]*Client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		replies:    make(chan directMessage),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run обслуживает регистрацию клиентов и рассылку до отмены контекста
func (manager *Manager) Run(ctx context.Context) {
	defer func() {
		for id, client := range manager.clients {
			delete(manager.clients, id)
			close(client.Send)
		}
		manager.clientCount.Store(0)
		close(manager.done)
		manager.logger.Info("Менеджер WebSocket остановлен")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-manager.register:
			manager.clients[client.ID] = client
			manager.clientCount.Store(int64(len(manager.clients)))
			manager.logger.Debug("Клиент %d подключился", client.ID)

		case client := <-manager.unregister:
			if _, ok := manager.clients[client.ID]; ok {
				delete(manager.clients, client.ID)
				close(client.Send)
				manager.clientCount.Store(int64(len(manager.clients)))
				manager.logger.Debug("Клиент %d отключился", client.ID)
			}

		case message := <-manager.broadcast:
			manager.sendAll(message)

		case r := <-manager.replies:
			if _, ok := manager.clients[r.client.ID]; ok {
				select {
				case r.client.Send <- r.message:
				default:
				}
			}
		}
	}
}

// sendAll отправляет сообщение всем клиентам. Клиент с переполненной очередью отключается.
func (manager *Manager) sendAll(message []byte) {
	for id, client := range manager.clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(manager.clients, id)
			manager.logger.Warn("Клиент %d не успевает читать сообщения и отключен", id)
		}
	}
	manager.clientCount.Store(int64(len(manager.clients)))
}

// BroadcastDatasetUpdated уведомляет дашборды о новой версии таблицы
func (manager *Manager) BroadcastDatasetUpdated(rows int, version string) {
	data, err := json.Marshal(Message{Type: MessageDatasetUpdated, Rows: rows, Version: version})
	if err != nil {
		manager.logger.Error("Ошибка кодирования уведомления: %v", err)
		return
	}

	select {
	case manager.broadcast <- data:
	case <-manager.done:
	default:
		manager.logger.Warn("Очередь рассылки переполнена, уведомление пропущено")
	}
}

// ClientCount число подключенных клиентов
func (manager *Manager) ClientCount() int {
	return int(manager.clientCount.Load())
}

// reply передаёт ответ клиенту через цикл Run, который владеет его каналом Send
func (manager *Manager) reply(c *Client, message []byte) {
	select {
	case manager.replies <- directMessage{client: c, message: message}:
	case <-manager.done:
	}
}

// drop снимает клиента с регистрации, если менеджер ещё работает
func (manager *Manager) drop(c *Client) {
	select {
	case manager.unregister <- c:
	case <-manager.done:
	}
}
