package routes_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/superstore_dashboard/config"
	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/datasettest"
	"github.com/LilVoxy/superstore_dashboard/export"
	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/middleware"
	"github.com/LilVoxy/superstore_dashboard/models"
	"github.com/LilVoxy/superstore_dashboard/routes"
)

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	cache := dataset.NewCache(dataset.NewCSVSource(datasettest.WriteFile(t), "utf-8"))
	svc := dashboard.NewService(cache, config.DashboardConfig{
		Title:            "Superstore Dashboard",
		PreviewRows:      5,
		TopStates:        10,
		EnableMap:        true,
		EnableYearFilter: true,
		DownloadName:     "filtered_superstore.csv",
	}, nil, nil)

	router := mux.NewRouter()
	routes.SetupRoutes(router, routes.Deps{
		Service:       svc,
		Clients:       fixedClients(3),
		AllowedOrigin: "*",
	})
	return router
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPage(t *testing.T) {
	rec := get(t, newRouter(t), "/?state=California")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Superstore Dashboard")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestOptions(t *testing.T) {
	rec := get(t, newRouter(t), "/api/options")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts filter.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Contains(t, opts.States, "California")
	assert.Equal(t, []int{2014, 2015, 2016, 2017}, opts.Years)
	assert.Equal(t, "2014-06-09", opts.MinDate)
}

func TestDashboardJSON(t *testing.T) {
	rec := get(t, newRouter(t), "/api/dashboard?state=California")
	require.Equal(t, http.StatusOK, rec.Code)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, 5, data.Rows)
	assert.Equal(t, 3, data.KPIs.TotalOrders)
	assert.InDelta(t, 1068.482, data.KPIs.TotalSales, 1e-9)
}

func TestDashboardBadRequest(t *testing.T) {
	router := newRouter(t)

	for _, target := range []string{
		"/api/dashboard?start=2017-01-01&end=2016-01-01",
		"/api/dashboard?start=someday",
		"/api/dashboard?year=abc",
		"/charts/pie.svg",
	} {
		rec := get(t, router, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)

		var resp routes.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), target)
		assert.NotEmpty(t, resp.Error, target)
	}
}

func TestDownloadCSV(t *testing.T) {
	rec := get(t, newRouter(t), "/api/download.csv?category=Technology")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeCSV, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="filtered_superstore.csv"`, rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3, "header and two Technology rows")
}

func TestDownloadXLSX(t *testing.T) {
	rec := get(t, newRouter(t), "/api/download.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_superstore.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), export.SheetSummary)
}

func TestChart(t *testing.T) {
	router := newRouter(t)
	for _, name := range []string{"category", "states", "trend", "map"} {
		rec := get(t, router, "/charts/"+name+".svg")
		require.Equal(t, http.StatusOK, rec.Code, name)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "<svg"), name)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, newRouter(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp routes.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, datasettest.Rows, resp.Rows)
	assert.Equal(t, 3, resp.Clients)
}

func TestHealthUnavailable(t *testing.T) {
	cache := dataset.NewCache(dataset.NewCSVSource(t.TempDir()+"/absent.csv", "utf-8"))
	svc := dashboard.NewService(cache, config.DashboardConfig{TopStates: 10}, nil, nil)
	router := mux.NewRouter()
	routes.SetupRoutes(router, routes.Deps{Service: svc})

	rec := get(t, router, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = get(t, router, "/api/dashboard")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
