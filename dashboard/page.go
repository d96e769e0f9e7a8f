package dashboard

import (
	"fmt"
	"html/template"
	"io"

	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/models"
)

// PageData модель представления страницы
type PageData struct {
	*models.DashboardData
	Options      filter.Options
	CSVURL       template.URL
	XLSXURL      template.URL
	DownloadName string
	Error        string
}

// choice значение multiselect и признак выбора
type choice struct {
	Value    string
	Selected bool
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"svg":     func(s string) template.HTML { return template.HTML(s) },
	"choices": choices,
	"years":   filter.YearsOf,
}).Parse(pageHTML))

// WritePage выводит HTML-страницу дашборда
func WritePage(w io.Writer, page PageData) error {
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("ошибка вывода страницы: %w", err)
	}
	return nil
}

// NewPageData собирает модель страницы
func NewPageData(data *models.DashboardData, opts filter.Options, downloadName string) PageData {
	query := data.Request.Query().Encode()
	return PageData{
		DashboardData: data,
		Options:       opts,
		CSVURL:        template.URL("/api/download.csv?" + query),
		XLSXURL:       template.URL("/api/download.xlsx?" + query),
		DownloadName:  downloadName,
	}
}

func choices(all, selected []string) []choice {
	set := make(map[string]bool, len(selected))
	for _, v := range selected {
		set[v] = true
	}
	out := make([]choice, len(all))
	for i, v := range all {
		out[i] = choice{Value: v, Selected: set[v]}
	}
	return out
}
