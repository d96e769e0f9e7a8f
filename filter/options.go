// filter/options.go
package filter

import (
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/LilVoxy/superstore_dashboard/dataset"
)

// Options значения, доступные в виджетах фильтра
type Options struct {
	States     []string `json:"states"`
	Categories []string `json:"categories"`
	Segments   []string `json:"segments"`
	Years      []int    `json:"years"`
	MinDate    string   `json:"minDate"`
	MaxDate    string   `json:"maxDate"`
}

// OptionsOf собирает уникальные значения в порядке первого появления
// (годы по возрастанию) и границы Order Date
func OptionsOf(df dataframe.DataFrame) Options {
	opts := Options{
		States:     distinct(df.Col(dataset.State).Records()),
		Categories: distinct(df.Col(dataset.Category).Records()),
		Segments:   distinct(df.Col(dataset.Segment).Records()),
	}

	if years, err := df.Col(dataset.Year).Int(); err == nil {
		seen := make(map[int]bool)
		for _, y := range years {
			if !seen[y] {
				seen[y] = true
				opts.Years = append(opts.Years, y)
			}
		}
		sort.Ints(opts.Years)
	}

	// ISO-даты сравниваются как строки
	for _, d := range df.Col(dataset.OrderDate).Records() {
		if opts.MinDate == "" || d < opts.MinDate {
			opts.MinDate = d
		}
		if d > opts.MaxDate {
			opts.MaxDate = d
		}
	}
	return opts
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
