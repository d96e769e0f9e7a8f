// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/middleware"
)

// ClientCounter число активных WebSocket-клиентов
type ClientCounter interface {
	ClientCount() int
}

// Deps зависимости обработчиков
type Deps struct {
	Service       *dashboard.Service
	Clients       ClientCounter
	WebSocket     http.HandlerFunc
	AllowedOrigin string
	Logger        *zap.Logger
}

// SetupRoutes настраивает все маршруты страницы, API и WebSocket
func SetupRoutes(router *mux.Router, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router.Use(middleware.Logging(logger))
	router.Use(middleware.CORS(deps.AllowedOrigin))

	// Страница дашборда
	router.HandleFunc("/", PageHandler(deps.Service, logger)).Methods("GET")

	// API дашборда
	router.HandleFunc("/api/options", OptionsHandler(deps.Service, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/dashboard", DashboardHandler(deps.Service, logger)).Methods("GET", "OPTIONS")

	// Выгрузки
	router.HandleFunc("/api/download.csv", DownloadCSVHandler(deps.Service, logger)).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/download.xlsx", DownloadXLSXHandler(deps.Service, logger)).Methods("GET", "OPTIONS")

	// Отдельные графики
	router.HandleFunc("/charts/{name}.svg", ChartHandler(deps.Service, logger)).Methods("GET")

	router.HandleFunc("/healthz", HealthHandler(deps.Service, deps.Clients)).Methods("GET")

	// WebSocket соединения
	if deps.WebSocket != nil {
		router.HandleFunc("/ws", deps.WebSocket)
	}
}
