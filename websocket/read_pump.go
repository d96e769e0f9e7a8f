// websocket/read_pump.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// readPump обрабатывает чтение сообщений от клиента
func (c *Client) readPump() {
	manager := c.manager
	defer func() {
		// Отправляем сигнал отключения
		select {
		case manager.Unregister <- c:
		case <-manager.ctx.Done():
		}
		c.close()
		c.Socket.Close()
	}()

	// Устанавливаем параметры подключения
	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				manager.logger.Warn("⚠️ Соединение закрыто с ошибкой", zap.String("session", c.ID), zap.Error(err))
			}
			return
		}
		// Любое сообщение продлевает соединение
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			manager.logger.Warn("⚠️ Ошибка декодирования сообщения", zap.String("session", c.ID), zap.Error(err))
			c.send(Message{Type: TypeError, Session: c.ID, Error: "некорректное сообщение"})
			continue
		}

		switch msg.Type {
		case TypePing:
			c.send(Message{Type: TypePong, Session: c.ID})

		case TypeFilter:
			if msg.Filter != nil {
				c.setFilter(*msg.Filter)
			}
			c.render(manager.ctx, c.currentFilter())

		default:
			c.send(Message{Type: TypeError, Session: c.ID, Error: "неизвестный тип сообщения: " + msg.Type})
		}
	}
}
