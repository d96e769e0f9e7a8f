// Package refresh перечитывает набор данных при изменении источника
// и уведомляет подписчиков о новой версии.
package refresh

import (
	"context"

	"go.uber.org/zap"
)

// Refresher перечитывает источник; true означает, что данные изменились.
// Реализуется *dataset.Cache.
type Refresher interface {
	Refresh(ctx context.Context) (bool, error)
}

// Listener получает уведомление о новой версии набора данных
type Listener interface {
	DatasetChanged()
}

// ListenerFunc позволяет использовать функцию как Listener
type ListenerFunc func()

// DatasetChanged вызывает f()
func (f ListenerFunc) DatasetChanged() { f() }

func refresh(ctx context.Context, r Refresher, listeners []Listener, logger *zap.Logger, reason string) {
	changed, err := r.Refresh(ctx)
	if err != nil {
		logger.Error("❌ Ошибка обновления набора данных",
			zap.String("reason", reason),
			zap.Error(err))
		return
	}
	if !changed {
		logger.Debug("Набор данных не изменился", zap.String("reason", reason))
		return
	}

	logger.Info("🔄 Набор данных обновлен", zap.String("reason", reason))
	for _, l := range listeners {
		l.DatasetChanged()
	}
}
