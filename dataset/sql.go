// dataset/sql.go
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// importBatchSize количество строк между записями прогресса в лог
const importBatchSize = 500

// SQLSource читает набор данных из таблицы базы данных
type SQLSource struct {
	db     *sql.DB
	driver string
	table  string
}

// NewSQLSource создает новый экземпляр SQLSource
func NewSQLSource(db *sql.DB, driver, table string) (*SQLSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("недопустимое имя таблицы: %q", table)
	}
	return &SQLSource{db: db, driver: driver, table: table}, nil
}

// Load извлекает все строки таблицы в порядке загрузки
func (s *SQLSource) Load(ctx context.Context) (dataframe.DataFrame, error) {
	names := make([]string, len(storedColumns))
	header := make([]string, len(storedColumns))
	for i, c := range storedColumns {
		names[i] = c.SQL
		header[i] = c.Name
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(names, ", "), s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("ошибка запроса строк из %s: %w", s.table, err)
	}
	defer rows.Close()

	records := [][]string{header}
	values := make([]sql.NullString, len(storedColumns))
	dest := make([]interface{}, len(storedColumns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("ошибка сканирования строки: %w", err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = v.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("ошибка при итерации по строкам: %w", err)
	}

	return FromRecords(records)
}

// Fingerprint строится из количества строк и максимального id
func (s *SQLSource) Fingerprint(ctx context.Context) (string, error) {
	var count, maxID int64
	query := fmt.Sprintf("SELECT COUNT(*), COALESCE(MAX(id), 0) FROM %s", s.table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&count, &maxID); err != nil {
		return "", fmt.Errorf("ошибка получения отпечатка таблицы %s: %w", s.table, err)
	}
	return fmt.Sprintf("sql:%s:%d:%d", s.table, count, maxID), nil
}

// Describe описание источника
func (s *SQLSource) Describe() string {
	return fmt.Sprintf("%s:%s", s.driver, s.table)
}

// CreateTable создает таблицу заказов, если она не существует
func CreateTable(ctx context.Context, db *sql.DB, driver, table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("недопустимое имя таблицы: %q", table)
	}

	var idColumn, suffix string
	switch driver {
	case "mysql":
		idColumn = "id INT AUTO_INCREMENT PRIMARY KEY"
		suffix = " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	case "pgx":
		idColumn = "id SERIAL PRIMARY KEY"
	case "sqlite":
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	default:
		return fmt.Errorf("неподдерживаемый драйвер базы данных: %q", driver)
	}

	columns := []string{idColumn}
	for _, c := range storedColumns {
		switch c.Type {
		case series.Float:
			columns = append(columns, c.SQL+" DOUBLE PRECISION NOT NULL DEFAULT 0")
		case series.Int:
			columns = append(columns, c.SQL+" INTEGER NOT NULL DEFAULT 0")
		default:
			columns = append(columns, c.SQL+" VARCHAR(512) NOT NULL DEFAULT ''")
		}
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)%s", table, strings.Join(columns, ",\n\t"), suffix)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ошибка создания таблицы %s: %w", table, err)
	}
	return nil
}

// Import полностью заменяет содержимое таблицы строками dataframe.
// Вся загрузка выполняется в одной транзакции. Возвращает количество строк.
func Import(ctx context.Context, db *sql.DB, driver, table string, df dataframe.DataFrame, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := CreateTable(ctx, db, driver, table); err != nil {
		return 0, err
	}

	startTime := time.Now()
	total := df.Nrow()
	logger.Info("Начало загрузки заказов", zap.String("table", table), zap.Int("rows", total))

	names := make([]string, len(storedColumns))
	placeholders := make([]string, len(storedColumns))
	for i, c := range storedColumns {
		names[i] = c.SQL
		placeholders[i] = placeholder(driver, i+1)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	columns := columnValues(df)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return 0, fmt.Errorf("ошибка очистки таблицы %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подготовке запроса: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(storedColumns))
	for i := 0; i < total; i++ {
		for j := range storedColumns {
			args[j] = columns[j][i]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return i, fmt.Errorf("ошибка вставки строки %d: %w", i+1, err)
		}
		if (i+1)%importBatchSize == 0 {
			logger.Debug("Загружено строк", zap.Int("done", i+1), zap.Int("total", total))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	logger.Info("✅ Загрузка заказов завершена",
		zap.String("table", table),
		zap.Int("rows", total),
		zap.Duration("duration", time.Since(startTime)))
	return total, nil
}

// columnValues раскладывает dataframe по колонкам таблицы. Необязательные
// колонки, которых нет в наборе, заполняются нулевыми значениями.
func columnValues(df dataframe.DataFrame) [][]interface{} {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	n := df.Nrow()
	out := make([][]interface{}, len(storedColumns))
	for j, c := range storedColumns {
		values := make([]interface{}, n)
		switch {
		case !present[c.Name] && c.Type == series.String:
			for i := range values {
				values[i] = ""
			}
		case !present[c.Name]:
			for i := range values {
				values[i] = 0
			}
		case c.Type == series.Float:
			for i, v := range df.Col(c.Name).Float() {
				values[i] = v
			}
		case c.Type == series.Int:
			for i, v := range df.Col(c.Name).Records() {
				q, err := strconv.Atoi(v)
				if err != nil {
					q = 0
				}
				values[i] = q
			}
		default:
			for i, v := range df.Col(c.Name).Records() {
				values[i] = v
			}
		}
		out[j] = values
	}
	return out
}

func placeholder(driver string, n int) string {
	if driver == "pgx" {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
