package transform

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"

	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/models"
)

// KPIProcessor отвечает за расчет основных метрик
type KPIProcessor struct{}

// NewKPIProcessor создает новый экземпляр KPIProcessor
func NewKPIProcessor() *KPIProcessor {
	return &KPIProcessor{}
}

// ProcessKPIs считает сумму продаж и прибыли, среднюю скидку и число уникальных заказов
func (p *KPIProcessor) ProcessKPIs(df dataframe.DataFrame) models.KPIs {
	n := df.Nrow()
	if n == 0 {
		return models.KPIs{}
	}

	discount := sum(df.Col(dataset.Discount).Float())
	orders := make(map[string]struct{}, n)
	for _, id := range df.Col(dataset.OrderID).Records() {
		orders[id] = struct{}{}
	}

	return models.KPIs{
		TotalSales:  sum(df.Col(dataset.Sales).Float()).InexactFloat64(),
		TotalProfit: sum(df.Col(dataset.Profit).Float()).InexactFloat64(),
		AvgDiscount: discount.Div(decimal.NewFromInt(int64(n))).InexactFloat64(),
		HasDiscount: true,
		TotalOrders: len(orders),
	}
}

// ComputeKPIs метрики по dataframe без создания Transformer
func ComputeKPIs(df dataframe.DataFrame) models.KPIs {
	return NewKPIProcessor().ProcessKPIs(df)
}

// sum складывает значения в десятичной арифметике, чтобы итог не зависел от порядка строк
func sum(values []float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}
