// Package export выгружает отфильтрованный набор данных в CSV и XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/models"
)

// Листы книги XLSX
const (
	SheetFiltered = "Filtered"
	SheetSummary  = "Summary"
)

// Типы содержимого выгрузок
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteCSV записывает заголовок и строки без индекса
func WriteCSV(w io.Writer, df dataframe.DataFrame) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(dataset.Records(df)); err != nil {
		return fmt.Errorf("ошибка записи CSV: %w", err)
	}
	return nil
}

// WriteXLSX записывает книгу с листом строк и листом метрик
func WriteXLSX(w io.Writer, df dataframe.DataFrame, kpis models.KPIs, formatted models.FormattedKPIs) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetFiltered); err != nil {
		return fmt.Errorf("ошибка создания листа %s: %w", SheetFiltered, err)
	}

	names := df.Names()
	header := make([]interface{}, len(names))
	for i, name := range names {
		header[i] = name
	}
	if err := f.SetSheetRow(SheetFiltered, "A1", &header); err != nil {
		return fmt.Errorf("ошибка записи заголовка: %w", err)
	}

	columns := make([][]interface{}, len(names))
	for j, name := range names {
		columns[j] = cellValues(df.Col(name))
	}
	for i := 0; i < df.Nrow(); i++ {
		row := make([]interface{}, len(names))
		for j := range names {
			row[j] = columns[j][i]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetFiltered, cell, &row); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("ошибка создания листа %s: %w", SheetSummary, err)
	}
	summary := [][]interface{}{
		{"Metric", "Value", "Formatted"},
		{"Total Sales", kpis.TotalSales, formatted.TotalSales},
		{"Total Profit", kpis.TotalProfit, formatted.TotalProfit},
		{"Avg. Discount", kpis.AvgDiscount, formatted.AvgDiscount},
		{"Total Orders", kpis.TotalOrders, formatted.TotalOrders},
		{"Rows", df.Nrow(), fmt.Sprint(df.Nrow())},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("ошибка записи метрик: %w", err)
		}
	}
	if err := f.SetColWidth(SheetSummary, "A", "C", 18); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("ошибка записи XLSX: %w", err)
	}
	return nil
}

func cellValues(s series.Series) []interface{} {
	out := make([]interface{}, s.Len())
	switch s.Type() {
	case series.Float:
		for i, v := range s.Float() {
			out[i] = v
		}
	case series.Int:
		for i := 0; i < s.Len(); i++ {
			if v, err := s.Elem(i).Int(); err == nil {
				out[i] = v
			} else {
				out[i] = s.Elem(i).String()
			}
		}
	default:
		for i, v := range s.Records() {
			out[i] = v
		}
	}
	return out
}
