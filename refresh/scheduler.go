// refresh/scheduler.go
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler периодически перечитывает SQL-источник
type Scheduler struct {
	interval  time.Duration
	refresher Refresher
	listeners []Listener
	logger    *zap.Logger
}

// NewScheduler создает новый экземпляр Scheduler
func NewScheduler(interval time.Duration, r Refresher, logger *zap.Logger, listeners ...Listener) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		interval:  interval,
		refresher: r,
		listeners: listeners,
		logger:    logger,
	}
}

// Run запускает планировщик и блокируется до отмены контекста
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("интервал обновления должен быть положительным: %v", s.interval)
	}

	scheduler := gocron.NewScheduler(time.UTC)
	s.logger.Info("Запуск планировщика обновления", zap.Duration("interval", s.interval))

	_, err := scheduler.Every(s.interval).SingletonMode().Do(func() {
		refresh(ctx, s.refresher, s.listeners, s.logger, "schedule")
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	scheduler.StartAsync()

	<-ctx.Done()

	scheduler.Stop()
	s.logger.Info("Планировщик обновления остановлен")
	return nil
}
