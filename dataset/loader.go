// dataset/loader.go
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrMissingColumn в наборе данных нет обязательной колонки
	ErrMissingColumn = errors.New("отсутствует обязательная колонка")
	// ErrBadDate значение Order Date не удалось разобрать
	ErrBadDate = errors.New("некорректная дата")
	// ErrBadNumber числовое значение не удалось разобрать
	ErrBadNumber = errors.New("некорректное число")
	// ErrEmpty в наборе данных нет строк
	ErrEmpty = errors.New("набор данных пуст")
)

// Форматы Order Date, которые встречаются в выгрузках Superstore
var dateLayouts = []string{
	"1/2/2006",
	DateLayout,
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
	"1/2/06",
}

// ReadCSV читает CSV в dataframe и приводит его к рабочему виду
func ReadCSV(r io.Reader, encoding string) (dataframe.DataFrame, error) {
	switch strings.ToLower(encoding) {
	case "latin1", "iso-8859-1":
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	case "", "utf-8", "utf8":
	default:
		return dataframe.DataFrame{}, fmt.Errorf("неподдерживаемая кодировка: %q", encoding)
	}

	df := dataframe.ReadCSV(r, dataframe.WithTypes(columnTypes))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("ошибка чтения CSV: %w", df.Err)
	}
	return Normalize(df)
}

// FromRecords строит dataframe из строк (первая строка - заголовок)
func FromRecords(records [][]string) (dataframe.DataFrame, error) {
	if len(records) < 2 {
		return dataframe.DataFrame{}, ErrEmpty
	}
	df := dataframe.LoadRecords(records, dataframe.WithTypes(columnTypes))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("ошибка построения dataframe: %w", df.Err)
	}
	return Normalize(df)
}

// Normalize проверяет обязательные колонки, приводит Order Date к ISO-формату
// и добавляет колонку Year. Исходный dataframe не изменяется.
func Normalize(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, ErrEmpty
	}

	names := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		names[name] = true
	}
	for _, name := range RequiredColumns {
		if !names[name] {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	raw := df.Col(OrderDate).Records()
	dates := make([]string, len(raw))
	years := make([]int, len(raw))
	for i, value := range raw {
		t, err := ParseDate(value)
		if err != nil {
			// +2: заголовок и нумерация с единицы
			return dataframe.DataFrame{}, fmt.Errorf("строка %d: %w", i+2, err)
		}
		dates[i] = t.Format(DateLayout)
		years[i] = t.Year()
	}

	for _, name := range []string{Sales, Profit, Discount} {
		for i, v := range df.Col(name).Float() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return dataframe.DataFrame{}, fmt.Errorf("строка %d, колонка %s: %w", i+2, name, ErrBadNumber)
			}
		}
	}

	out := df.Mutate(series.New(dates, series.String, OrderDate))
	out = out.Mutate(series.New(years, series.Int, Year))
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("ошибка добавления производных колонок: %w", out.Err)
	}
	return out, nil
}

// ParseDate разбирает дату заказа в одном из поддерживаемых форматов
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, value)
}

// Records возвращает строки dataframe с заголовком. Дробные числа
// форматируются без хвостовых нулей, как в исходной выгрузке.
func Records(df dataframe.DataFrame) [][]string {
	names := df.Names()
	columns := make([][]string, len(names))
	for j, name := range names {
		col := df.Col(name)
		if col.Type() == series.Float {
			values := col.Float()
			formatted := make([]string, len(values))
			for i, v := range values {
				formatted[i] = FormatFloat(v)
			}
			columns[j] = formatted
			continue
		}
		columns[j] = col.Records()
	}

	records := make([][]string, 0, df.Nrow()+1)
	records = append(records, names)
	for i := 0; i < df.Nrow(); i++ {
		row := make([]string, len(names))
		for j := range names {
			row[j] = columns[j][i]
		}
		records = append(records, row)
	}
	return records
}

// FormatFloat форматирует число в кратчайшем виде
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
