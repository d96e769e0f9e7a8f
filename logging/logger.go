package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LilVoxy/superstore_dashboard/config"
)

// New создает zap-логгер по настройкам. Если задан cfg.File, записи
// дублируются в файл dashboard_log_YYYY-MM-DD.log в указанном каталоге.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Sampling = nil

	switch strings.ToLower(cfg.Format) {
	case "json":
		zcfg.Encoding = "json"
	case "", "console", "text":
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("неизвестный формат логов: %q", cfg.Format)
	}

	zcfg.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		if err := os.MkdirAll(cfg.File, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать каталог для логов: %w", err)
		}
		zcfg.OutputPaths = append(zcfg.OutputPaths, FilePath(cfg.File, time.Now()))
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("не удалось инициализировать логгер: %w", err)
	}
	return logger, nil
}

// FilePath возвращает путь к файлу лога за указанный день
func FilePath(dir string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("dashboard_log_%s.log", day.Format("2006-01-02")))
}

// ParseLevel переводит строковый уровень в zapcore.Level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("неизвестный уровень логирования: %q", level)
	}
}
