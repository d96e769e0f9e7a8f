package dashboard_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/superstore_dashboard/config"
	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/datasettest"
	"github.com/LilVoxy/superstore_dashboard/filter"
)

func testConfig() config.DashboardConfig {
	return config.DashboardConfig{
		Title:            "Superstore Dashboard",
		PreviewRows:      5,
		TopStates:        10,
		EnableMap:        true,
		EnableYearFilter: true,
		DownloadName:     "filtered_superstore.csv",
	}
}

func newService(t *testing.T, cfg config.DashboardConfig) *dashboard.Service {
	t.Helper()
	cache := dataset.NewCache(dataset.NewCSVSource(datasettest.WriteFile(t), "utf-8"))
	return dashboard.NewService(cache, cfg, nil, nil)
}

func TestBuildDefault(t *testing.T) {
	svc := newService(t, testConfig())

	data, err := svc.Build(context.Background(), filter.Request{})
	require.NoError(t, err)

	assert.Equal(t, "Superstore Dashboard", data.Title)
	assert.Equal(t, datasettest.Rows, data.Rows)
	assert.InDelta(t, datasettest.TotalSales, data.KPIs.TotalSales, 1e-9)
	assert.Len(t, data.TopStates, 9)
	assert.Contains(t, data.Charts.Category, "<svg")
	assert.Contains(t, data.Charts.Map, `data-state="CA"`)
	assert.True(t, data.Metadata.MapEnabled)
	assert.NotEmpty(t, data.Metadata.Fingerprint)
}

func TestBuildFiltered(t *testing.T) {
	svc := newService(t, testConfig())

	data, err := svc.Build(context.Background(), filter.Request{States: []string{"California"}})
	require.NoError(t, err)
	assert.Equal(t, 5, data.Rows)
	assert.InDelta(t, 1068.482, data.KPIs.TotalSales, 1e-9)
	assert.InDelta(t, 125.4957, data.KPIs.TotalProfit, 1e-9)
	assert.Equal(t, 3, data.KPIs.TotalOrders)
}

func TestBuildWithoutExtendedFeatures(t *testing.T) {
	cfg := testConfig()
	cfg.EnableMap = false
	cfg.EnableYearFilter = false
	svc := newService(t, cfg)

	data, err := svc.Build(context.Background(), filter.Request{Years: []string{}})
	require.NoError(t, err)
	assert.Equal(t, datasettest.Rows, data.Rows, "year filter is ignored when disabled")
	assert.Empty(t, data.Charts.Map)
	assert.Empty(t, data.SalesByState)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Empty(t, opts.Years)

	_, err = svc.Chart(context.Background(), dashboard.ChartMap, filter.Request{})
	assert.ErrorIs(t, err, dashboard.ErrUnknownChart)
}

func TestBuildBadRequest(t *testing.T) {
	svc := newService(t, testConfig())

	_, err := svc.Build(context.Background(), filter.Request{Start: "2017-01-01", End: "2015-01-01"})
	require.Error(t, err)
	assert.True(t, dashboard.IsBadRequest(err))
}

func TestChart(t *testing.T) {
	svc := newService(t, testConfig())

	svg, err := svc.Chart(context.Background(), dashboard.ChartTrend, filter.Request{})
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")

	_, err = svc.Chart(context.Background(), "pie", filter.Request{})
	assert.True(t, dashboard.IsBadRequest(err))
}

func TestWritePage(t *testing.T) {
	svc := newService(t, testConfig())
	ctx := context.Background()

	req := filter.Request{Categories: []string{"Technology"}}
	data, err := svc.Build(ctx, req)
	require.NoError(t, err)
	opts, err := svc.Options(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dashboard.WritePage(&buf, dashboard.NewPageData(data, opts, "filtered_superstore.csv")))
	page := buf.String()

	assert.Contains(t, page, "<title>Superstore Dashboard</title>")
	assert.Contains(t, page, "Key Metrics")
	assert.Contains(t, page, "Visual Insights")
	assert.Contains(t, page, `<option value="Technology" selected>`)
	assert.Contains(t, page, `<option value="Furniture">`)
	assert.Contains(t, page, "/api/download.csv?category=Technology")
	assert.Contains(t, page, `id="chart-map"`)
	assert.Contains(t, page, `name="year"`)
	assert.Contains(t, page, data.Formatted.TotalSales)
}
