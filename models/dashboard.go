package models

import (
	"time"

	"github.com/LilVoxy/superstore_dashboard/filter"
)

// DashboardData содержит все вычисленные представления дашборда
type DashboardData struct {
	Title     string           `json:"title" yaml:"title"`
	Request   filter.Request   `json:"request" yaml:"request"`
	Selection filter.Selection `json:"selection" yaml:"selection"`
	Rows      int              `json:"rows" yaml:"rows"`

	// Метрики
	KPIs      KPIs          `json:"kpis" yaml:"kpis"`
	Formatted FormattedKPIs `json:"formatted" yaml:"formatted"`

	// Таблица с первыми строками отфильтрованного набора
	Preview Table `json:"preview" yaml:"preview"`

	// Данные графиков
	SalesByCategory []GroupValue `json:"salesByCategory" yaml:"sales_by_category"`
	TopStates       []GroupValue `json:"topStates" yaml:"top_states"`
	SalesTrend      []GroupValue `json:"salesTrend" yaml:"sales_trend"`
	SalesByState    []StateValue `json:"salesByState,omitempty" yaml:"sales_by_state,omitempty"`
	// Unmapped штаты, которые не попали на карту
	Unmapped []string `json:"unmapped,omitempty" yaml:"unmapped,omitempty"`

	Charts Charts `json:"charts" yaml:"-"`

	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// KPIs четыре основные метрики
type KPIs struct {
	TotalSales  float64 `json:"totalSales" yaml:"total_sales"`
	TotalProfit float64 `json:"totalProfit" yaml:"total_profit"`
	// AvgDiscount имеет смысл только при HasDiscount (есть хотя бы одна строка)
	AvgDiscount float64 `json:"avgDiscount" yaml:"avg_discount"`
	HasDiscount bool    `json:"hasDiscount" yaml:"has_discount"`
	TotalOrders int     `json:"totalOrders" yaml:"total_orders"`
}

// FormattedKPIs метрики в виде для отображения
type FormattedKPIs struct {
	TotalSales  string `json:"totalSales" yaml:"total_sales"`
	TotalProfit string `json:"totalProfit" yaml:"total_profit"`
	AvgDiscount string `json:"avgDiscount" yaml:"avg_discount"`
	TotalOrders string `json:"totalOrders" yaml:"total_orders"`
}

// GroupValue результат группировки по одной колонке
type GroupValue struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// StateValue значение по штату с почтовым кодом для карты
type StateValue struct {
	State string  `json:"state" yaml:"state"`
	Code  string  `json:"code" yaml:"code"`
	Value float64 `json:"value" yaml:"value"`
}

// Table строки в табличном виде
type Table struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Charts готовая SVG-разметка графиков
type Charts struct {
	Category string `json:"category,omitempty"`
	States   string `json:"states,omitempty"`
	Trend    string `json:"trend,omitempty"`
	Map      string `json:"map,omitempty"`
}

// Metadata сведения о расчете
type Metadata struct {
	GeneratedAt time.Time     `json:"generatedAt" yaml:"generated_at"`
	Source      string        `json:"source" yaml:"source"`
	Fingerprint string        `json:"fingerprint" yaml:"fingerprint"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	MapEnabled  bool          `json:"mapEnabled" yaml:"map_enabled"`
	YearFilter  bool          `json:"yearFilter" yaml:"year_filter"`
}
