// refresh/watcher.go
package refresh

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce пауза после последнего события файла перед перечитыванием
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher следит за CSV-файлом и перечитывает кэш после его изменения
type FileWatcher struct {
	path      string
	watcher   *fsnotify.Watcher
	refresher Refresher
	listeners []Listener
	debounce  time.Duration
	logger    *zap.Logger
}

// NewFileWatcher создает новый экземпляр FileWatcher.
// Наблюдается каталог файла: редакторы часто заменяют файл целиком.
func NewFileWatcher(path string, r Refresher, debounce time.Duration, logger *zap.Logger, listeners ...Listener) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка определения пути %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания наблюдателя: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("ошибка наблюдения за каталогом %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		path:      abs,
		watcher:   watcher,
		refresher: r,
		listeners: listeners,
		debounce:  debounce,
		logger:    logger,
	}, nil
}

// Run обрабатывает события до отмены контекста и закрывает наблюдатель
func (w *FileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	w.logger.Info("👀 Наблюдение за файлом набора данных", zap.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Наблюдение за файлом остановлено", zap.String("path", w.path))
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Событие файла набора данных",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("⚠️ Ошибка наблюдателя файлов", zap.Error(err))

		case <-timer.C:
			refresh(ctx, w.refresher, w.listeners, w.logger, "file")
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
