// websocket/manager.go
package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// NewManager создает новый менеджер WebSocket-соединений.
// allowedOrigin "*" разрешает подключения с любого источника.
func NewManager(builder Builder, allowedOrigin string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[string]*Client),
		changed:    make(chan struct{}, 1),
		builder:    builder,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// Run запускает работу менеджера до отмены контекста
func (manager *Manager) Run(ctx context.Context) {
	defer manager.closeAll()
	defer manager.cancel()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-manager.Register:
			manager.clients[client.ID] = client
			manager.count.Add(1)
			manager.logger.Info("👤 Клиент подключился", zap.String("session", client.ID))

		case client := <-manager.Unregister:
			if _, ok := manager.clients[client.ID]; ok {
				delete(manager.clients, client.ID)
				manager.count.Add(-1)
				client.close()
				manager.logger.Info("👤 Клиент отключился", zap.String("session", client.ID))
			}

		case message := <-manager.Broadcast:
			// Рассылаем сообщение всем подключенным клиентам
			manager.broadcast(message)

		case <-manager.changed:
			manager.rerenderAll(manager.ctx)
		}
	}
}

// DatasetChanged сообщает менеджеру, что набор данных обновился.
// Всем клиентам будет отправлено уведомление и пересчитанный дашборд.
func (manager *Manager) DatasetChanged() {
	select {
	case manager.changed <- struct{}{}:
	default:
	}
}

// ClientCount количество подключенных клиентов
func (manager *Manager) ClientCount() int {
	return int(manager.count.Load())
}

// broadcast отправляет сообщение всем подключенным клиентам
func (manager *Manager) broadcast(message []byte) {
	for _, client := range manager.clients {
		client.enqueue(message)
	}
}

func (manager *Manager) rerenderAll(ctx context.Context) {
	notice, err := json.Marshal(Message{Type: TypeReload})
	if err != nil {
		return
	}
	manager.broadcast(notice)
	manager.logger.Info("🔄 Набор данных обновлен, пересчитываем дашборды", zap.Int("clients", len(manager.clients)))

	for _, client := range manager.clients {
		go client.render(ctx, client.currentFilter())
	}
}

func (manager *Manager) closeAll() {
	for id, client := range manager.clients {
		delete(manager.clients, id)
		client.close()
	}
	manager.count.Store(0)
}
