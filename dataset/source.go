// dataset/source.go
package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// Source источник набора данных
type Source interface {
	// Load читает набор данных целиком
	Load(ctx context.Context) (dataframe.DataFrame, error)
	// Fingerprint возвращает отпечаток текущего состояния источника;
	// изменение отпечатка означает, что данные нужно перечитать
	Fingerprint(ctx context.Context) (string, error)
	// Describe краткое описание источника для логов
	Describe() string
}

// CSVSource читает набор данных из локального CSV-файла
type CSVSource struct {
	Path     string
	Encoding string
}

// NewCSVSource создает новый экземпляр CSVSource
func NewCSVSource(path, encoding string) *CSVSource {
	return &CSVSource{Path: path, Encoding: encoding}
}

// Load читает и нормализует файл
func (s *CSVSource) Load(ctx context.Context) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("ошибка открытия файла %s: %w", s.Path, err)
	}
	defer file.Close()

	df, err := ReadCSV(file, s.Encoding)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", s.Path, err)
	}
	return df, nil
}

// Fingerprint строится из размера и времени изменения файла
func (s *CSVSource) Fingerprint(ctx context.Context) (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", fmt.Errorf("ошибка получения информации о файле %s: %w", s.Path, err)
	}
	return fmt.Sprintf("csv:%s:%d:%d", s.Path, info.Size(), info.ModTime().UnixNano()), nil
}

// Describe описание источника
func (s *CSVSource) Describe() string {
	return "csv:" + s.Path
}
