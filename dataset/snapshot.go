package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"github.com/LilVoxy/superstore_dashboard/processor"
)

// WriteSnapshot сохраняет нормализованный dataframe в сжатый файл снимка
func WriteSnapshot(path, fingerprint string, df dataframe.DataFrame) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(Records(df)); err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	data := processor.PackSnapshot(fingerprint, buf.Bytes())

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла снимка: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка записи снимка: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка записи снимка: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ошибка сохранения снимка: %w", err)
	}
	return nil
}

// ReadSnapshot читает снимок, если он существует и соответствует отпечатку.
// ok=false означает, что снимок нужно пересоздать.
func ReadSnapshot(path, fingerprint string) (df dataframe.DataFrame, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return dataframe.DataFrame{}, false, nil
	}
	if err != nil {
		return dataframe.DataFrame{}, false, fmt.Errorf("ошибка чтения снимка: %w", err)
	}

	stored, payload, err := processor.UnpackSnapshot(data)
	if err != nil {
		return dataframe.DataFrame{}, false, err
	}
	if stored != fingerprint {
		return dataframe.DataFrame{}, false, nil
	}

	df, err = ReadCSV(bytes.NewReader(payload), "utf-8")
	if err != nil {
		return dataframe.DataFrame{}, false, fmt.Errorf("ошибка разбора снимка: %w", err)
	}
	return df, true, nil
}
