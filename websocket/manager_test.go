package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/models"
)

type fakeBuilder struct {
	calls atomic.Int32
}

func (b *fakeBuilder) Build(_ context.Context, req filter.Request) (*models.DashboardData, error) {
	b.calls.Add(1)
	if len(req.States) == 1 && req.States[0] == "Atlantis" {
		return nil, errors.New("unknown state")
	}
	return &models.DashboardData{Title: "test", Rows: len(req.States), Request: req}, nil
}

func startServer(t *testing.T) (*Manager, *fakeBuilder, *websocket.Conn) {
	t.Helper()
	builder := &fakeBuilder{}
	manager := NewManager(builder, "*", nil)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(manager.HandleConnections))
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Close()
	})
	return manager, builder, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPingPong(t *testing.T) {
	_, _, conn := startServer(t)

	require.NoError(t, conn.WriteJSON(Message{Type: TypePing}))
	msg := readMessage(t, conn)
	assert.Equal(t, TypePong, msg.Type)
	assert.NotEmpty(t, msg.Session)
}

func TestFilterRendersDashboard(t *testing.T) {
	_, _, conn := startServer(t)

	req := filter.Request{States: []string{"Texas", "Utah"}}
	require.NoError(t, conn.WriteJSON(Message{Type: TypeFilter, Filter: &req}))

	msg := readMessage(t, conn)
	require.Equal(t, TypeDashboard, msg.Type)
	require.NotNil(t, msg.Data)
	assert.Equal(t, 2, msg.Data.Rows)
	assert.Equal(t, req.States, msg.Data.Request.States)
}

func TestFilterErrorIsReported(t *testing.T) {
	_, _, conn := startServer(t)

	req := filter.Request{States: []string{"Atlantis"}}
	require.NoError(t, conn.WriteJSON(Message{Type: TypeFilter, Filter: &req}))

	msg := readMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Error, "unknown state")
}

func TestMalformedMessage(t *testing.T) {
	_, _, conn := startServer(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	assert.Equal(t, TypeError, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(Message{Type: "subscribe"}))
	assert.Equal(t, TypeError, readMessage(t, conn).Type)
}

func TestDatasetChangedRerendersClients(t *testing.T) {
	manager, builder, conn := startServer(t)

	req := filter.Request{States: []string{"Texas"}}
	require.NoError(t, conn.WriteJSON(Message{Type: TypeFilter, Filter: &req}))
	require.Equal(t, TypeDashboard, readMessage(t, conn).Type)

	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)
	manager.DatasetChanged()

	assert.Equal(t, TypeReload, readMessage(t, conn).Type)
	msg := readMessage(t, conn)
	require.Equal(t, TypeDashboard, msg.Type)
	assert.Equal(t, []string{"Texas"}, msg.Data.Request.States, "last filter of the client is reused")
	assert.Equal(t, int32(2), builder.calls.Load())
}

func TestClientUnregistersOnClose(t *testing.T) {
	manager, _, conn := startServer(t)

	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)
	conn.Close()
	require.Eventually(t, func() bool { return manager.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}
