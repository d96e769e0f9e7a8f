package charts

import (
	"fmt"
	"html"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/LilVoxy/superstore_dashboard/geo"
	"github.com/LilVoxy/superstore_dashboard/models"
	"github.com/LilVoxy/superstore_dashboard/transform"
)

// Размеры плиточной карты
const (
	tileSize   = 56
	tileGap    = 4
	mapMargin  = 20
	mapTitleH  = 40
	mapLegendH = 50
)

var (
	scaleLow   = drawing.ColorFromHex("DEEBF7")
	scaleHigh  = drawing.ColorFromHex("08306B")
	emptyColor = drawing.ColorFromHex("EEEEEE")
)

// Choropleth плиточная карта США: каждый штат окрашен по линейной шкале
// суммы продаж. Штаты без продаж остаются серыми.
func (r *Renderer) Choropleth(values []models.StateValue) string {
	width := 2*mapMargin + geo.GridCols*(tileSize+tileGap)
	height := mapTitleH + geo.GridRows*(tileSize+tileGap) + mapLegendH + mapMargin
	if len(values) == 0 {
		return Placeholder(TitleMap, width, height)
	}

	byCode := make(map[string]models.StateValue, len(values))
	lo, hi := values[0].Value, values[0].Value
	for _, v := range values {
		byCode[v.Code] = v
		if v.Value < lo {
			lo = v.Value
		}
		if v.Value > hi {
			hi = v.Value
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		width, height, width, height)
	fmt.Fprintf(&b, `<text x="%d" y="28" text-anchor="middle" font-size="16" fill="#333333">%s</text>`, width/2, TitleMap)

	for _, s := range geo.All() {
		x := mapMargin + s.Col*(tileSize+tileGap)
		y := mapTitleH + s.Row*(tileSize+tileGap)

		fill := emptyColor
		label := fmt.Sprintf("%s: no sales", s.Name)
		text := "#666666"
		if v, ok := byCode[s.Code]; ok {
			t := scale(v.Value, lo, hi)
			fill = interpolate(scaleLow, scaleHigh, t)
			label = fmt.Sprintf("%s: %s", s.Name, transform.FormatCurrency(v.Value))
			if t > 0.5 {
				text = "#ffffff"
			} else {
				text = "#08306b"
			}
		}

		fmt.Fprintf(&b, `<g class="state" data-state="%s"><title>%s</title>`, s.Code, html.EscapeString(label))
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s"/>`, x, y, tileSize, tileSize, fill.String())
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="13" fill="%s">%s</text></g>`,
			x+tileSize/2, y+tileSize/2+5, text, s.Code)
	}

	r.legend(&b, width, height, lo, hi)
	b.WriteString(`</svg>`)
	return b.String()
}

func (r *Renderer) legend(b *strings.Builder, width, height int, lo, hi float64) {
	const steps = 10
	legendW := width / 2
	x0 := (width - legendW) / 2
	y := height - mapMargin - mapLegendH/2
	stepW := legendW / steps

	for i := 0; i < steps; i++ {
		c := interpolate(scaleLow, scaleHigh, float64(i)/float64(steps-1))
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="12" fill="%s"/>`, x0+i*stepW, y, stepW, c.String())
	}
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="start" font-size="12" fill="#333333">%s</text>`,
		x0, y+28, transform.FormatCurrency(lo))
	fmt.Fprintf(b, `<text x="%d" y="%d" text-anchor="end" font-size="12" fill="#333333">%s</text>`,
		x0+steps*stepW, y+28, transform.FormatCurrency(hi))
}

// scale положение значения на шкале [0, 1]
func scale(v, lo, hi float64) float64 {
	if hi <= lo {
		return 1
	}
	return (v - lo) / (hi - lo)
}

func interpolate(from, to drawing.Color, t float64) drawing.Color {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return drawing.Color{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: 255,
	}
}
