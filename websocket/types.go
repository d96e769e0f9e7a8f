// websocket/types.go
package websocket

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/models"
)

// Message структура сообщения для обмена через WebSocket
type Message struct {
	Type    string                `json:"type"`
	Session string                `json:"session,omitempty"`
	Filter  *filter.Request       `json:"filter,omitempty"`
	Data    *models.DashboardData `json:"data,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Builder пересчитывает дашборд для фильтра клиента
type Builder interface {
	Build(ctx context.Context, req filter.Request) (*models.DashboardData, error)
}

// Client WebSocket-клиент дашборда
type Client struct {
	ID      string
	Socket  *websocket.Conn
	Send    chan []byte
	manager *Manager

	// done закрывается менеджером при отключении
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	filter filter.Request
}

// Manager менеджер WebSocket-соединений
type Manager struct {
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	clients map[string]*Client
	count   atomic.Int64
	changed chan struct{}

	builder  Builder
	logger   *zap.Logger
	upgrader websocket.Upgrader

	// ctx отменяется при остановке Run
	ctx    context.Context
	cancel context.CancelFunc
}
