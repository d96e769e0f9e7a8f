// websocket/client.go
package websocket

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/filter"
)

// enqueue ставит сообщение в очередь отправки. Если клиент отключен
// или очередь переполнена, сообщение отбрасывается.
func (c *Client) enqueue(message []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.Send <- message:
		return true
	case <-c.done:
		return false
	default:
		c.manager.logger.Warn("⚠️ Очередь клиента переполнена, сообщение отброшено", zap.String("session", c.ID))
		return false
	}
}

func (c *Client) send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.manager.logger.Error("❌ Ошибка сериализации сообщения", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	c.enqueue(data)
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) currentFilter() filter.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Client) setFilter(req filter.Request) {
	c.mu.Lock()
	c.filter = req
	c.mu.Unlock()
}

// render пересчитывает дашборд для фильтра и отправляет результат клиенту
func (c *Client) render(ctx context.Context, req filter.Request) {
	data, err := c.manager.builder.Build(ctx, req)
	if err != nil {
		c.manager.logger.Warn("⚠️ Ошибка расчета дашборда для клиента",
			zap.String("session", c.ID),
			zap.Error(err))
		c.send(Message{Type: TypeError, Session: c.ID, Error: err.Error()})
		return
	}
	c.send(Message{Type: TypeDashboard, Session: c.ID, Data: data})
}
