package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/datasettest"
	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/models"
	"github.com/LilVoxy/superstore_dashboard/transform"
)

func TestComputeKPIs(t *testing.T) {
	k := transform.ComputeKPIs(datasettest.Frame(t))

	assert.InDelta(t, datasettest.TotalSales, k.TotalSales, 1e-9)
	assert.InDelta(t, datasettest.TotalProfit, k.TotalProfit, 1e-9)
	assert.InDelta(t, datasettest.AvgDiscount, k.AvgDiscount, 1e-9)
	assert.True(t, k.HasDiscount)
	assert.Equal(t, datasettest.Orders, k.TotalOrders)
}

func TestComputeKPIsFiltered(t *testing.T) {
	df := datasettest.Frame(t)
	sel, err := filter.Resolve(filter.Request{
		Segments:   []string{"Consumer"},
		Categories: []string{"Office Supplies"},
	}, filter.OptionsOf(df))
	require.NoError(t, err)

	k := transform.ComputeKPIs(filter.Apply(df, sel))
	assert.InDelta(t, 1174.556, k.TotalSales, 1e-9)
	assert.InDelta(t, 165.825, k.TotalProfit, 1e-9)
	assert.InDelta(t, 0.1, k.AvgDiscount, 1e-9)
	assert.Equal(t, 6, k.TotalOrders)
}

func TestComputeKPIsEmpty(t *testing.T) {
	df := datasettest.Frame(t)
	sel, err := filter.Resolve(filter.Request{States: []string{}}, filter.OptionsOf(df))
	require.NoError(t, err)

	k := transform.ComputeKPIs(filter.Apply(df, sel))
	assert.Equal(t, models.KPIs{}, k)
	assert.Equal(t, "n/a", transform.FormatKPIs(k).AvgDiscount)
}

func TestGroups(t *testing.T) {
	df := datasettest.Frame(t)
	p := transform.NewGroupProcessor()

	categories, err := p.SalesByCategory(df)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Furniture", categories[0].Label)
	assert.InDelta(t, 2000.3375, categories[0].Value, 1e-9)
	assert.Equal(t, "Office Supplies", categories[1].Label)
	assert.InDelta(t, 1318.326, categories[1].Value, 1e-9)
	assert.Equal(t, "Technology", categories[2].Label)
	assert.InDelta(t, 997.722, categories[2].Value, 1e-9)

	top, err := p.TopStatesByProfit(df, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Kentucky", "Washington", "California"}, labels(top))
	assert.InDelta(t, 261.4956, top[0].Value, 1e-9)

	all, err := p.TopStatesByProfit(df, 10)
	require.NoError(t, err)
	require.Len(t, all, 9)
	assert.Equal(t, "Florida", all[8].Label)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Value, all[i].Value)
	}

	trend, err := p.SalesTrend(df)
	require.NoError(t, err)
	require.Len(t, trend, 11)
	assert.Equal(t, "2014-06-09", trend[0].Label)
	assert.InDelta(t, 963.292, trend[0].Value, 1e-9)
	assert.Equal(t, "2017-12-09", trend[10].Label)
}

func TestGroupTotalsMatchColumnTotals(t *testing.T) {
	df := datasettest.Frame(t)

	for _, key := range []string{dataset.Category, dataset.State, dataset.Segment, dataset.OrderDate} {
		groups, err := transform.SumBy(df, key, dataset.Sales)
		require.NoError(t, err)
		total := 0.0
		for _, g := range groups {
			total += g.Value
		}
		assert.InDelta(t, datasettest.TotalSales, total, 1e-6, key)
	}
}

func TestTransform(t *testing.T) {
	df := datasettest.Frame(t)
	data, err := transform.NewTransformer(nil).Transform(df, transform.Options{
		PreviewRows: 5,
		TopStates:   10,
		EnableMap:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, datasettest.Rows, data.Rows)
	assert.Equal(t, "$4,316.39", data.Formatted.TotalSales)
	assert.Equal(t, "$59.65", data.Formatted.TotalProfit)
	assert.Equal(t, "13.67%", data.Formatted.AvgDiscount)
	assert.Equal(t, "11", data.Formatted.TotalOrders)

	require.Len(t, data.Preview.Rows, 5)
	assert.Equal(t, dataset.Records(df)[0], data.Preview.Columns)

	assert.Len(t, data.SalesByState, 9)
	assert.Empty(t, data.Unmapped)
	assert.Equal(t, "CA", data.SalesByState[0].Code)
}

func TestTransformEmpty(t *testing.T) {
	df := datasettest.Frame(t)
	sel, err := filter.Resolve(filter.Request{Categories: []string{}}, filter.OptionsOf(df))
	require.NoError(t, err)

	data, err := transform.NewTransformer(nil).Transform(filter.Apply(df, sel), transform.Options{PreviewRows: 5, TopStates: 10, EnableMap: true})
	require.NoError(t, err)
	assert.Zero(t, data.Rows)
	assert.Empty(t, data.Preview.Rows)
	assert.Empty(t, data.SalesByCategory)
	assert.Empty(t, data.TopStates)
	assert.Empty(t, data.SalesTrend)
	assert.Empty(t, data.SalesByState)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", transform.FormatCurrency(1234567.891))
	assert.Equal(t, "$-123.86", transform.FormatCurrency(-123.858))
	assert.Equal(t, "15.62%", transform.FormatPercent(0.15623))
	assert.Equal(t, "9,994", transform.FormatCount(9994))
}

func labels(values []models.GroupValue) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Label
	}
	return out
}
