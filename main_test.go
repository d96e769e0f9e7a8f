package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/superstore_dashboard/datasettest"
	"github.com/LilVoxy/superstore_dashboard/models"
)

// writeConfig пишет YAML-конфигурацию с тестовым CSV
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	csvPath := datasettest.WriteFile(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "dataset:\n  path: " + csvPath + "\n  encoding: utf-8\n  watch: false\n" +
		"log:\n  level: error\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportJSON(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, "report", "--config", cfg, "--category", "Technology", "--format", "json")
	require.NoError(t, err)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, 2, data.Rows)
	assert.Equal(t, []string{"Technology"}, data.Request.Categories)
}

func TestReportText(t *testing.T) {
	out, err := run(t, "report", "--config", writeConfig(t, ""))
	require.NoError(t, err)
	assert.Contains(t, out, "$4,316.39")
}

func TestReportBadRange(t *testing.T) {
	_, err := run(t, "report", "--config", writeConfig(t, ""), "--start", "2017-01-01", "--end", "2016-01-01")
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rows.csv")
	_, err := run(t, "export", "--config", writeConfig(t, ""), "--state", "California", "--out", out)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 6)
}

func TestExportXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rows.xlsx")
	_, err := run(t, "export", "--config", writeConfig(t, ""), "--out", out)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Filtered")
	require.NoError(t, err)
	assert.Len(t, rows, datasettest.Rows+1)
}

func TestExportRejectsExtension(t *testing.T) {
	_, err := run(t, "export", "--config", writeConfig(t, ""), "--out", filepath.Join(t.TempDir(), "rows.json"))
	assert.Error(t, err)
}

func TestImportThenReportFromSQL(t *testing.T) {
	csvPath := datasettest.WriteFile(t)
	dir := t.TempDir()
	database := "database:\n  driver: sqlite\n  dbname: " + filepath.Join(dir, "orders.db") + "\n  table: orders\n" +
		"log:\n  level: error\n"

	importCfg := filepath.Join(dir, "import.yaml")
	require.NoError(t, os.WriteFile(importCfg, []byte(database+
		"dataset:\n  path: "+csvPath+"\n  encoding: utf-8\n"), 0o644))

	out, err := run(t, "import", "--config", importCfg)
	require.NoError(t, err)
	assert.Contains(t, out, "15")

	reportCfg := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(reportCfg, []byte(database+
		"dataset:\n  source: sql\n"), 0o644))

	out, err = run(t, "report", "--config", reportCfg, "--state", "California", "--format", "json")
	require.NoError(t, err)

	var data models.DashboardData
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, 5, data.Rows)
}
