package refresh

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRefresher struct {
	calls   atomic.Int32
	changed bool
	err     error
}

func (f *fakeRefresher) Refresh(context.Context) (bool, error) {
	f.calls.Add(1)
	return f.changed, f.err
}

func counter(n *atomic.Int32) Listener {
	return ListenerFunc(func() { n.Add(1) })
}

func TestRefreshNotifiesOnlyOnChange(t *testing.T) {
	var notified atomic.Int32
	logger := zap.NewNop()

	refresh(context.Background(), &fakeRefresher{changed: true}, []Listener{counter(&notified)}, logger, "test")
	assert.EqualValues(t, 1, notified.Load())

	refresh(context.Background(), &fakeRefresher{}, []Listener{counter(&notified)}, logger, "test")
	assert.EqualValues(t, 1, notified.Load())

	refresh(context.Background(), &fakeRefresher{changed: true, err: errors.New("boom")}, []Listener{counter(&notified)}, logger, "test")
	assert.EqualValues(t, 1, notified.Load())
}

func TestFileWatcherRefreshesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	r := &fakeRefresher{changed: true}
	var notified atomic.Int32
	w, err := NewFileWatcher(path, r, 30*time.Millisecond, zap.NewNop(), counter(&notified))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 0, r.calls.Load(), "changes of other files are ignored")

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("v3"), 0o644))

	assert.Eventually(t, func() bool { return notified.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewFileWatcherMissingDir(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "absent", "orders.csv"), &fakeRefresher{}, 0, nil)
	assert.Error(t, err)
}

func TestSchedulerRefreshesPeriodically(t *testing.T) {
	r := &fakeRefresher{changed: true}
	var notified atomic.Int32
	s := NewScheduler(20*time.Millisecond, r, nil, counter(&notified))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return notified.Load() >= 2 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSchedulerRejectsInterval(t *testing.T) {
	err := NewScheduler(0, &fakeRefresher{}, nil).Run(context.Background())
	assert.Error(t, err)
}
