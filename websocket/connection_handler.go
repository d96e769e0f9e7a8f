// websocket/connection_handler.go
package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleConnections обрабатывает WebSocket-соединения
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := manager.upgrader.Upgrade(w, r, nil)
	if err != nil {
		manager.logger.Warn("⚠️ Ошибка при установке WebSocket-соединения", zap.Error(err))
		return
	}

	client := &Client{
		ID:      uuid.NewString(),
		Socket:  conn,
		Send:    make(chan []byte, sendBuffer),
		manager: manager,
		done:    make(chan struct{}),
	}

	// Поздний клиент после остановки менеджера сразу закрывается
	select {
	case manager.Register <- client:
	case <-manager.ctx.Done():
		conn.Close()
		return
	}

	manager.logger.Debug("✅ WebSocket-соединение установлено",
		zap.String("session", client.ID),
		zap.String("remote", r.RemoteAddr))

	// Запускаем горутины для чтения и отправки сообщений
	go client.writePump()
	go client.readPump()
}
