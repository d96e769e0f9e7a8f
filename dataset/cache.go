// dataset/cache.go
package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LoadRecorder получает результат каждой загрузки источника
type LoadRecorder interface {
	RecordLoad(ctx context.Context, source string, rows int, duration time.Duration, err error)
}

// Info состояние кэша
type Info struct {
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint"`
	Rows        int       `json:"rows"`
	LoadedAt    time.Time `json:"loadedAt"`
}

// Cache хранит загруженный набор данных и перечитывает его только при
// изменении отпечатка источника. Опубликованный dataframe не изменяется.
type Cache struct {
	source   Source
	snapshot string
	logger   *zap.Logger
	recorder LoadRecorder

	group singleflight.Group

	mu       sync.RWMutex
	frame    *dataframe.DataFrame
	fp       string
	loadedAt time.Time
}

// CacheOption настраивает Cache
type CacheOption func(*Cache)

// WithSnapshot включает снимок набора данных на диске
func WithSnapshot(path string) CacheOption {
	return func(c *Cache) {
		c.snapshot = path
	}
}

// WithLogger задает логгер
func WithLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder задает получателя метрик загрузки
func WithRecorder(r LoadRecorder) CacheOption {
	return func(c *Cache) {
		c.recorder = r
	}
}

// NewCache создает новый экземпляр Cache
func NewCache(source Source, opts ...CacheOption) *Cache {
	c := &Cache{
		source: source,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get возвращает набор данных, загружая его при первом обращении.
// Одновременные вызовы выполняют одну загрузку.
func (c *Cache) Get(ctx context.Context) (dataframe.DataFrame, error) {
	c.mu.RLock()
	frame := c.frame
	c.mu.RUnlock()
	if frame != nil {
		return *frame, nil
	}

	v, err, _ := c.group.Do("load", func() (interface{}, error) {
		return c.load(ctx)
	})
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return v.(dataframe.DataFrame), nil
}

// Refresh перечитывает источник, если изменился его отпечаток.
// При ошибке загрузки предыдущий набор данных остается в кэше.
func (c *Cache) Refresh(ctx context.Context) (bool, error) {
	fp, err := c.source.Fingerprint(ctx)
	if err != nil {
		return false, err
	}

	c.mu.RLock()
	unchanged := c.frame != nil && c.fp == fp
	c.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	if _, err, _ := c.group.Do("load", func() (interface{}, error) {
		return c.load(ctx)
	}); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate сбрасывает кэш; следующий Get перечитает источник
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.frame = nil
	c.fp = ""
	c.mu.Unlock()
}

// Info возвращает состояние кэша
func (c *Cache) Info() Info {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info := Info{
		Source:      c.source.Describe(),
		Fingerprint: c.fp,
		LoadedAt:    c.loadedAt,
	}
	if c.frame != nil {
		info.Rows = c.frame.Nrow()
	}
	return info
}

func (c *Cache) load(ctx context.Context) (dataframe.DataFrame, error) {
	start := time.Now()
	df, fp, err := c.read(ctx)
	if c.recorder != nil {
		c.recorder.RecordLoad(ctx, c.source.Describe(), df.Nrow(), time.Since(start), err)
	}
	if err != nil {
		c.logger.Error("❌ Ошибка загрузки набора данных",
			zap.String("source", c.source.Describe()),
			zap.Error(err))
		return dataframe.DataFrame{}, err
	}

	c.mu.Lock()
	c.frame = &df
	c.fp = fp
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("✅ Набор данных загружен",
		zap.String("source", c.source.Describe()),
		zap.Int("rows", df.Nrow()),
		zap.Duration("duration", time.Since(start)))
	return df, nil
}

func (c *Cache) read(ctx context.Context) (dataframe.DataFrame, string, error) {
	fp, err := c.source.Fingerprint(ctx)
	if err != nil {
		return dataframe.DataFrame{}, "", err
	}

	if c.snapshot != "" {
		df, ok, err := ReadSnapshot(c.snapshot, fp)
		switch {
		case err != nil:
			c.logger.Warn("⚠️ Снимок набора данных не прочитан, читаем источник", zap.Error(err))
		case ok:
			c.logger.Debug("Набор данных восстановлен из снимка", zap.String("path", c.snapshot))
			return df, fp, nil
		}
	}

	df, err := c.source.Load(ctx)
	if err != nil {
		return dataframe.DataFrame{}, "", err
	}

	if c.snapshot != "" {
		if err := WriteSnapshot(c.snapshot, fp, df); err != nil {
			c.logger.Warn("⚠️ Не удалось сохранить снимок набора данных", zap.Error(err))
		}
	}
	return df, fp, nil
}
