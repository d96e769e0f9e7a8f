// routes/download_handlers.go
package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/export"
	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/transform"
)

// DownloadCSVHandler отдает отфильтрованные строки файлом CSV
func DownloadCSVHandler(svc *dashboard.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		df, _, err := svc.Filtered(r.Context(), filter.ParseQuery(r.URL.Query()))
		if err != nil {
			writeError(w, logger, err)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, df); err != nil {
			logger.Error("❌ Ошибка при формировании CSV", zap.Error(err))
			http.Error(w, "Ошибка при формировании файла", http.StatusInternalServerError)
			return
		}

		attachment(w, export.ContentTypeCSV, downloadName(svc.Config().DownloadName, ".csv"))
		_, _ = buf.WriteTo(w)
	}
}

// DownloadXLSXHandler отдает отфильтрованные строки и метрики книгой XLSX
func DownloadXLSXHandler(svc *dashboard.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		df, _, err := svc.Filtered(r.Context(), filter.ParseQuery(r.URL.Query()))
		if err != nil {
			writeError(w, logger, err)
			return
		}

		kpis := transform.ComputeKPIs(df)
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, df, kpis, transform.FormatKPIs(kpis)); err != nil {
			logger.Error("❌ Ошибка при формировании XLSX", zap.Error(err))
			http.Error(w, "Ошибка при формировании файла", http.StatusInternalServerError)
			return
		}

		attachment(w, export.ContentTypeXLSX, downloadName(svc.Config().DownloadName, ".xlsx"))
		_, _ = buf.WriteTo(w)
	}
}

func attachment(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

// downloadName заменяет расширение имени файла выгрузки
func downloadName(name, ext string) string {
	if name == "" {
		name = "filtered_superstore.csv"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
