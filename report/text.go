// report/text.go
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/LilVoxy/superstore_dashboard/models"
	"github.com/LilVoxy/superstore_dashboard/transform"
)

// Цвета карточек метрик
var (
	primary = lipgloss.Color("#1F77B4")
	muted   = lipgloss.Color("#7F7F7F")
)

// WriteText выводит карточки метрик и таблицы всех представлений
func WriteText(w io.Writer, data *models.DashboardData) error {
	r := lipgloss.NewRenderer(w)

	title := r.NewStyle().Bold(true).Foreground(primary)
	section := r.NewStyle().Bold(true).MarginTop(1)
	note := r.NewStyle().Foreground(muted)

	var b strings.Builder
	fmt.Fprintln(&b, title.Render(data.Title))
	fmt.Fprintln(&b, note.Render(describeSelection(data)))

	// 1. Карточки метрик
	fmt.Fprintln(&b, section.Render("Key Metrics"))
	fmt.Fprintln(&b, lipgloss.JoinHorizontal(lipgloss.Top,
		card(r, "Total Sales", data.Formatted.TotalSales),
		card(r, "Total Profit", data.Formatted.TotalProfit),
		card(r, "Avg Discount", data.Formatted.AvgDiscount),
		card(r, "Total Orders", data.Formatted.TotalOrders),
	))

	// 2. Первые строки
	fmt.Fprintln(&b, section.Render("Data Preview"))
	writeTable(&b, data.Preview.Columns, data.Preview.Rows)

	// 3. Представления графиков
	fmt.Fprintln(&b, section.Render("Sales by Category"))
	writeTable(&b, []string{"Category", "Sales"}, groupRows(data.SalesByCategory))

	fmt.Fprintln(&b, section.Render("Top States by Profit"))
	writeTable(&b, []string{"State", "Profit"}, groupRows(data.TopStates))

	fmt.Fprintln(&b, section.Render("Sales Trend"))
	writeTable(&b, []string{"Date", "Sales"}, groupRows(data.SalesTrend))

	if len(data.Unmapped) > 0 {
		fmt.Fprintln(&b, note.Render("Not shown on the map: "+strings.Join(data.Unmapped, ", ")))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("ошибка вывода отчета: %w", err)
	}
	return nil
}

func card(r *lipgloss.Renderer, label, value string) string {
	style := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Padding(0, 1).
		Width(18)
	return style.Render(label + "\n" + r.NewStyle().Bold(true).Render(value))
}

func writeTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}

func groupRows(values []models.GroupValue) [][]string {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v.Label, transform.FormatCurrency(v.Value)}
	}
	return rows
}

func describeSelection(data *models.DashboardData) string {
	sel := data.Selection
	parts := []string{
		fmt.Sprintf("%s .. %s", sel.From, sel.To),
		fmt.Sprintf("%d rows", data.Rows),
	}
	if data.Request.States != nil {
		parts = append(parts, "states: "+list(sel.States))
	}
	if data.Request.Categories != nil {
		parts = append(parts, "categories: "+list(sel.Categories))
	}
	if data.Request.Segments != nil {
		parts = append(parts, "segments: "+list(sel.Segments))
	}
	return strings.Join(parts, " | ")
}

func list(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
