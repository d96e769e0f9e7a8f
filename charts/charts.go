// Package charts строит SVG-графики дашборда.
package charts

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/geo"
	"github.com/LilVoxy/superstore_dashboard/models"
	"github.com/LilVoxy/superstore_dashboard/transform"
)

// Заголовки графиков
const (
	TitleCategory = "Sales by Category"
	TitleStates   = "Top 10 States by Profit"
	TitleTrend    = "Sales Trend Over Time"
	TitleMap      = "Sales by State"
)

// NoData текст заглушки для пустой выборки
const NoData = "No data for current filters"

// Палитра категорий
var palette = []drawing.Color{
	drawing.ColorFromHex("636EFA"),
	drawing.ColorFromHex("EF553B"),
	drawing.ColorFromHex("00CC96"),
	drawing.ColorFromHex("AB63FA"),
	drawing.ColorFromHex("FFA15A"),
	drawing.ColorFromHex("19D3F3"),
}

var (
	positiveColor = drawing.ColorFromHex("2A9D8F")
	negativeColor = drawing.ColorFromHex("E76F51")
	lineColor     = drawing.ColorFromHex("636EFA")
)

// Renderer строит графики заданного размера
type Renderer struct {
	logger *zap.Logger
	width  int
	height int
}

// NewRenderer создает новый экземпляр Renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger, width: 800, height: 400}
}

// CategoryBar столбцы продаж по категориям, у каждой категории свой цвет
func (r *Renderer) CategoryBar(values []models.GroupValue) string {
	if len(values) == 0 {
		return Placeholder(TitleCategory, r.width, r.height)
	}

	bars := make([]chart.Value, len(values))
	for i, v := range values {
		c := palette[i%len(palette)]
		bars[i] = chart.Value{
			Label: v.Label,
			Value: v.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}

	return r.render(TitleCategory, &chart.BarChart{
		Title:        TitleCategory,
		Width:        r.width,
		Height:       r.height,
		BarWidth:     barWidth(r.width, len(bars)),
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:        chart.YAxis{ValueFormatter: moneyFormatter, Range: barRange(values)},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	})
}

// TopStatesBar столбцы прибыли по штатам, отсортированные по убыванию.
// Отрицательная прибыль выделяется цветом.
func (r *Renderer) TopStatesBar(values []models.GroupValue) string {
	if len(values) == 0 {
		return Placeholder(TitleStates, r.width, r.height)
	}

	bars := make([]chart.Value, len(values))
	for i, v := range values {
		label := v.Label
		if s, ok := geo.Lookup(v.Label); ok {
			label = s.Code
		}
		c := positiveColor
		if v.Value < 0 {
			c = negativeColor
		}
		bars[i] = chart.Value{
			Label: label,
			Value: v.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}

	return r.render(TitleStates, &chart.BarChart{
		Title:        TitleStates,
		Width:        r.width,
		Height:       r.height,
		BarWidth:     barWidth(r.width, len(bars)),
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:        chart.YAxis{ValueFormatter: moneyFormatter, Range: barRange(values)},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	})
}

// SalesTrendLine линия продаж по датам заказа
func (r *Renderer) SalesTrendLine(values []models.GroupValue) string {
	if len(values) == 0 {
		return Placeholder(TitleTrend, r.width, r.height)
	}

	xs := make([]time.Time, 0, len(values))
	ys := make([]float64, 0, len(values))
	for _, v := range values {
		t, err := time.Parse(dataset.DateLayout, v.Label)
		if err != nil {
			r.logger.Warn("⚠️ Пропущена точка графика с некорректной датой", zap.String("date", v.Label))
			continue
		}
		xs = append(xs, t)
		ys = append(ys, v.Value)
	}
	if len(xs) == 0 {
		return Placeholder(TitleTrend, r.width, r.height)
	}
	// Одна точка не задает диапазон оси, дублируем ее на следующий день
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	yAxis := chart.YAxis{Name: dataset.Sales, ValueFormatter: moneyFormatter}
	if lo, hi := bounds(ys); lo == hi {
		yAxis.Range = zeroBased(lo, hi)
	}

	return r.render(TitleTrend, &chart.Chart{
		Title:      TitleTrend,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: dataset.OrderDate, ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01")},
		YAxis:      yAxis,
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    dataset.Sales,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: lineColor, StrokeWidth: 1.5},
			},
		},
	})
}

// renderable общий метод BarChart и Chart
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (r *Renderer) render(title string, c renderable) string {
	var buf bytes.Buffer
	if err := c.Render(chart.SVG, &buf); err != nil {
		r.logger.Warn("⚠️ Ошибка построения графика, показываем заглушку",
			zap.String("chart", title),
			zap.Error(err))
		return Placeholder(title, r.width, r.height)
	}
	return buf.String()
}

func barWidth(width, n int) int {
	w := (width - 120) / (n * 2)
	switch {
	case w < 12:
		return 12
	case w > 80:
		return 80
	}
	return w
}

// barRange диапазон оси, включающий ноль, от которого строятся столбцы
func barRange(values []models.GroupValue) *chart.ContinuousRange {
	ys := make([]float64, len(values))
	for i, v := range values {
		ys[i] = v.Value
	}
	return zeroBased(bounds(ys))
}

func bounds(ys []float64) (lo, hi float64) {
	for i, y := range ys {
		if i == 0 || y < lo {
			lo = y
		}
		if i == 0 || y > hi {
			hi = y
		}
	}
	return lo, hi
}

func zeroBased(lo, hi float64) *chart.ContinuousRange {
	if lo > 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if lo == hi {
		hi = 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func moneyFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return transform.FormatCurrency(f)
	}
	return fmt.Sprint(v)
}

// Placeholder пустой график с подписью
func Placeholder(title string, width, height int) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#fafafa" stroke="#dddddd"/>`+
		`<text x="%d" y="30" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#333333">%s</text>`+
		`<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888888">%s</text>`+
		`</svg>`,
		width, height, width, height,
		width/2, html.EscapeString(title),
		width/2, height/2, NoData)
}
