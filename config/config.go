// config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix префикс переменных окружения. Вложенность задается двойным подчеркиванием:
// SUPERSTORE_DATASET__SNAPSHOT_PATH -> dataset.snapshot_path
const EnvPrefix = "SUPERSTORE_"

// Config содержит полную конфигурацию дашборда
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Database  DatabaseConfig  `koanf:"database"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	Addr          string        `koanf:"addr"`
	ReadTimeout   time.Duration `koanf:"read_timeout"`
	WriteTimeout  time.Duration `koanf:"write_timeout"`
	IdleTimeout   time.Duration `koanf:"idle_timeout"`
	AllowedOrigin string        `koanf:"allowed_origin"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // console, json
	// Каталог для файла лога; пусто - только stderr
	File string `koanf:"file"`
}

// DatasetConfig описывает источник данных
type DatasetConfig struct {
	Source       string `koanf:"source"` // csv, sql
	Path         string `koanf:"path"`
	Encoding     string `koanf:"encoding"` // latin1, utf-8
	SnapshotPath string `koanf:"snapshot_path"`
	Watch        bool   `koanf:"watch"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"` // mysql, pgx, sqlite
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	DBName          string        `koanf:"dbname"`
	DSN             string        `koanf:"dsn"`
	Table           string        `koanf:"table"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// DashboardConfig управляет содержимым страницы
type DashboardConfig struct {
	Title            string `koanf:"title"`
	PreviewRows      int    `koanf:"preview_rows"`
	TopStates        int    `koanf:"top_states"`
	EnableMap        bool   `koanf:"enable_map"`
	EnableYearFilter bool   `koanf:"enable_year_filter"`
	DownloadName     string `koanf:"download_name"`
}

// TelemetryConfig настройки экспорта метрик
type TelemetryConfig struct {
	Exporter    string `koanf:"exporter"` // none, stdout
	ServiceName string `koanf:"service_name"`
}

// Значения конфигурации по умолчанию
var defaults = map[string]interface{}{
	"server.addr":           ":8080",
	"server.read_timeout":   "15s",
	"server.write_timeout":  "15s",
	"server.idle_timeout":   "60s",
	"server.allowed_origin": "*",

	"log.level":  "info",
	"log.format": "console",
	"log.file":   "",

	"dataset.source":        "csv",
	"dataset.path":          "Sample - Superstore.csv",
	"dataset.encoding":      "latin1",
	"dataset.snapshot_path": "",
	"dataset.watch":         true,

	"database.driver":           "mysql",
	"database.host":             "localhost",
	"database.port":             3306,
	"database.user":             "root",
	"database.password":         "",
	"database.dbname":           "superstore",
	"database.dsn":              "",
	"database.table":            "superstore_orders",
	"database.refresh_interval": "1h",

	"dashboard.title":              "Superstore Dashboard",
	"dashboard.preview_rows":       5,
	"dashboard.top_states":         10,
	"dashboard.enable_map":         true,
	"dashboard.enable_year_filter": true,
	"dashboard.download_name":      "filtered_superstore.csv",

	"telemetry.exporter":     "none",
	"telemetry.service_name": "superstore-dashboard",
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл, затем окружение
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("ошибка установки значения по умолчанию %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", path, err)
		}
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate проверяет взаимоисключающие и обязательные параметры
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case "csv":
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path обязателен для источника csv")
		}
	case "sql":
		if c.Database.Table == "" {
			return fmt.Errorf("database.table обязателен для источника sql")
		}
	default:
		return fmt.Errorf("неизвестный источник данных: %q", c.Dataset.Source)
	}

	switch strings.ToLower(c.Dataset.Encoding) {
	case "latin1", "iso-8859-1", "utf-8", "utf8", "":
	default:
		return fmt.Errorf("неподдерживаемая кодировка: %q", c.Dataset.Encoding)
	}

	if c.Dashboard.PreviewRows < 0 {
		return fmt.Errorf("dashboard.preview_rows не может быть отрицательным")
	}
	if c.Dashboard.TopStates <= 0 {
		return fmt.Errorf("dashboard.top_states должен быть положительным")
	}
	return nil
}
