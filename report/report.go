// Package report выводит рассчитанный дашборд в терминал, JSON или YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LilVoxy/superstore_dashboard/models"
)

// Форматы вывода
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write выводит дашборд в указанном формате
func Write(w io.Writer, format string, data *models.DashboardData) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return WriteText(w, data)
	case FormatJSON:
		return WriteJSON(w, data)
	case FormatYAML, "yml":
		return WriteYAML(w, data)
	default:
		return fmt.Errorf("неизвестный формат отчета: %q", format)
	}
}

// WriteJSON выводит дашборд без SVG-графиков
func WriteJSON(w io.Writer, data *models.DashboardData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(withoutCharts(data)); err != nil {
		return fmt.Errorf("ошибка кодирования JSON: %w", err)
	}
	return nil
}

// WriteYAML выводит дашборд в YAML
func WriteYAML(w io.Writer, data *models.DashboardData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("ошибка кодирования YAML: %w", err)
	}
	return enc.Close()
}

func withoutCharts(data *models.DashboardData) models.DashboardData {
	out := *data
	out.Charts = models.Charts{}
	return out
}
