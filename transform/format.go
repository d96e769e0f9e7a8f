package transform

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/LilVoxy/superstore_dashboard/models"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency денежная сумма с разделителями разрядов: $1,234.56 и $-12.30
func FormatCurrency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// FormatPercent доля в процентах с двумя знаками: 0.1234 -> 12.34%
func FormatPercent(v float64) string {
	return printer.Sprintf("%.2f%%", v*100)
}

// FormatCount целое с разделителями разрядов
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatKPIs метрики в виде для карточек
func FormatKPIs(k models.KPIs) models.FormattedKPIs {
	discount := "n/a"
	if k.HasDiscount {
		discount = FormatPercent(k.AvgDiscount)
	}
	return models.FormattedKPIs{
		TotalSales:  FormatCurrency(k.TotalSales),
		TotalProfit: FormatCurrency(k.TotalProfit),
		AvgDiscount: discount,
		TotalOrders: FormatCount(k.TotalOrders),
	}
}
