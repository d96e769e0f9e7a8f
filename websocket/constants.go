// websocket/constants.go
package websocket

import (
	"time"
)

// Константы для WebSocket-соединения
const (
	// Время ожидания записи сообщения клиенту
	writeWait = 10 * time.Second

	// Время ожидания сообщения от клиента
	pongWait = 60 * time.Second

	// Период отправки пинг-сообщений
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения (фильтр)
	maxMessageSize = 64 * 1024

	// Размер очереди исходящих сообщений клиента
	sendBuffer = 16
)

// Типы сообщений
const (
	TypePing      = "ping"
	TypePong      = "pong"
	TypeFilter    = "filter"
	TypeDashboard = "dashboard"
	TypeError     = "error"
	TypeReload    = "reload"
)
