// dataset/columns.go
package dataset

import (
	"github.com/go-gota/gota/series"
)

// Имена колонок набора данных Superstore
const (
	OrderID      = "Order ID"
	OrderDate    = "Order Date"
	ShipMode     = "Ship Mode"
	CustomerName = "Customer Name"
	Segment      = "Segment"
	City         = "City"
	State        = "State"
	Region       = "Region"
	Category     = "Category"
	SubCategory  = "Sub-Category"
	ProductName  = "Product Name"
	Sales        = "Sales"
	Quantity     = "Quantity"
	Discount     = "Discount"
	Profit       = "Profit"

	// Year вычисляется из Order Date при загрузке
	Year = "Year"
)

// DateLayout формат, к которому приводится Order Date
const DateLayout = "2006-01-02"

// RequiredColumns колонки, без которых дашборд не строится
var RequiredColumns = []string{OrderID, OrderDate, State, Category, Segment, Sales, Profit, Discount}

// columnTypes фиксированные типы колонок; остальные определяются автоматически
var columnTypes = map[string]series.Type{
	"Row ID":      series.Int,
	OrderID:       series.String,
	OrderDate:     series.String,
	"Ship Date":   series.String,
	ShipMode:      series.String,
	"Customer ID": series.String,
	CustomerName:  series.String,
	Segment:       series.String,
	"Country":     series.String,
	City:          series.String,
	State:         series.String,
	"Postal Code": series.String,
	Region:        series.String,
	"Product ID":  series.String,
	Category:      series.String,
	SubCategory:   series.String,
	ProductName:   series.String,
	Sales:         series.Float,
	Quantity:      series.Int,
	Discount:      series.Float,
	Profit:        series.Float,
	Year:          series.Int,
}

// storedColumn сопоставление колонки набора данных и колонки SQL-таблицы
type storedColumn struct {
	Name string
	SQL  string
	Type series.Type
}

// storedColumns колонки, которые переносятся в SQL-таблицу и обратно
var storedColumns = []storedColumn{
	{OrderID, "order_id", series.String},
	{OrderDate, "order_date", series.String},
	{ShipMode, "ship_mode", series.String},
	{CustomerName, "customer_name", series.String},
	{Segment, "segment", series.String},
	{City, "city", series.String},
	{State, "state", series.String},
	{Region, "region", series.String},
	{Category, "category", series.String},
	{SubCategory, "sub_category", series.String},
	{ProductName, "product_name", series.String},
	{Sales, "sales", series.Float},
	{Quantity, "quantity", series.Int},
	{Discount, "discount", series.Float},
	{Profit, "profit", series.Float},
}
