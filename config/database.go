package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DataSourceName формирует строку подключения для выбранного драйвера.
// Явно заданный DSN имеет приоритет.
func (c DatabaseConfig) DataSourceName() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}

	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true",
			c.User,
			c.Password,
			c.Host,
			c.Port,
			c.DBName,
		), nil
	case "pgx":
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.User,
			c.Password,
			c.Host,
			c.Port,
			c.DBName,
		), nil
	case "sqlite":
		// Для sqlite dbname - путь к файлу
		return c.DBName, nil
	default:
		return "", fmt.Errorf("неподдерживаемый драйвер базы данных: %q", c.Driver)
	}
}

// ConnectDatabase устанавливает подключение к базе данных и проверяет его
func ConnectDatabase(ctx context.Context, c DatabaseConfig) (*sql.DB, error) {
	dsn, err := c.DataSourceName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(c.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	// Настройка параметров подключения
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if c.Driver == "sqlite" {
		// sqlite не любит параллельную запись
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось установить соединение с базой данных: %w", err)
	}

	return db, nil
}
