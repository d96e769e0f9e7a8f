// filter/filter.go
package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/LilVoxy/superstore_dashboard/dataset"
)

var (
	// ErrInvalidRange начало периода позже конца
	ErrInvalidRange = errors.New("начальная дата позже конечной")
	// ErrInvalidValue значение фильтра не удалось разобрать
	ErrInvalidValue = errors.New("некорректное значение фильтра")
)

// Selection разрешенный фильтр: все значения заполнены
type Selection struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	States     []string `json:"states"`
	Categories []string `json:"categories"`
	Segments   []string `json:"segments"`
	// Years пустой (nil) - фильтр по году не применяется
	Years []int `json:"years,omitempty"`
}

// Resolve заполняет значения по умолчанию и приводит даты к границам набора
func Resolve(req Request, opts Options) (Selection, error) {
	from, err := parseBound(req.Start, opts.MinDate)
	if err != nil {
		return Selection{}, err
	}
	to, err := parseBound(req.End, opts.MaxDate)
	if err != nil {
		return Selection{}, err
	}
	if from > to {
		return Selection{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from, to)
	}

	sel := Selection{
		From:       clamp(from, opts.MinDate, opts.MaxDate),
		To:         clamp(to, opts.MinDate, opts.MaxDate),
		States:     orDefault(req.States, opts.States),
		Categories: orDefault(req.Categories, opts.Categories),
		Segments:   orDefault(req.Segments, opts.Segments),
	}

	if req.Years == nil {
		sel.Years = append([]int(nil), opts.Years...)
	} else {
		sel.Years = make([]int, 0, len(req.Years))
		for _, v := range req.Years {
			y, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return Selection{}, fmt.Errorf("%w: год %q", ErrInvalidValue, v)
			}
			sel.Years = append(sel.Years, y)
		}
	}
	return sel, nil
}

func parseBound(value, fallback string) (string, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(dataset.DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: дата %q", ErrInvalidValue, value)
	}
	return t.Format(dataset.DateLayout), nil
}

func clamp(d, lo, hi string) string {
	if lo != "" && d < lo {
		return lo
	}
	if hi != "" && d > hi {
		return hi
	}
	return d
}

func orDefault(values, all []string) []string {
	if values == nil {
		return append([]string(nil), all...)
	}
	return append([]string{}, values...)
}

// Apply возвращает новый dataframe со строками, удовлетворяющими всем условиям
func Apply(df dataframe.DataFrame, sel Selection) dataframe.DataFrame {
	filters := []dataframe.F{
		{
			Colname:    dataset.OrderDate,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool {
				d := el.String()
				return d >= sel.From && d <= sel.To
			},
		},
		member(dataset.State, sel.States),
		member(dataset.Category, sel.Categories),
		member(dataset.Segment, sel.Segments),
	}

	if sel.Years != nil {
		years := make(map[int]bool, len(sel.Years))
		for _, y := range sel.Years {
			years[y] = true
		}
		filters = append(filters, dataframe.F{
			Colname:    dataset.Year,
			Comparator: series.CompFunc,
			Comparando: func(el series.Element) bool {
				y, err := el.Int()
				return err == nil && years[y]
			},
		})
	}

	return df.FilterAggregation(dataframe.And, filters...)
}

func member(col string, values []string) dataframe.F {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return dataframe.F{
		Colname:    col,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return set[el.String()]
		},
	}
}
