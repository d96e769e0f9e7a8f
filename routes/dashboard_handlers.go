// routes/dashboard_handlers.go
package routes

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/filter"
)

// PageHandler выводит HTML-страницу для фильтра из строки запроса
func PageHandler(svc *dashboard.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := filter.ParseQuery(r.URL.Query())

		data, err := svc.Build(r.Context(), req)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		opts, err := svc.Options(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}

		// Страница собирается в буфер, чтобы ошибка шаблона не оставила половину ответа
		var buf bytes.Buffer
		if err := dashboard.WritePage(&buf, dashboard.NewPageData(data, opts, svc.Config().DownloadName)); err != nil {
			logger.Error("❌ Ошибка при выводе страницы", zap.Error(err))
			http.Error(w, "Ошибка при выводе страницы", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

// OptionsHandler возвращает значения виджетов фильтра
func OptionsHandler(svc *dashboard.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.Options(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, opts)
	}
}

// DashboardHandler возвращает рассчитанный дашборд в JSON
func DashboardHandler(svc *dashboard.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := svc.Build(r.Context(), filter.ParseQuery(r.URL.Query()))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, data)
	}
}

// ChartHandler возвращает один график в формате SVG
func ChartHandler(svc *dashboard.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		svg, err := svc.Chart(r.Context(), name, filter.ParseQuery(r.URL.Query()))
		if err != nil {
			writeError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(svg))
	}
}

// HealthHandler сообщает о готовности сервиса и размере набора данных
func HealthHandler(svc *dashboard.Service, clients ClientCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}

		df, err := svc.Cache().Get(r.Context())
		if err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
		} else {
			resp.Rows = df.Nrow()
		}

		info := svc.Cache().Info()
		resp.Source = info.Source
		resp.Fingerprint = info.Fingerprint
		resp.LoadedAt = info.LoadedAt
		if clients != nil {
			resp.Clients = clients.ClientCount()
		}

		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
