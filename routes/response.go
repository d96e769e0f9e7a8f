// routes/response.go
package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/dashboard"
)

// HealthResponse ответ /healthz
type HealthResponse struct {
	Status      string    `json:"status"`
	Rows        int       `json:"rows"`
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	LoadedAt    time.Time `json:"loadedAt"`
	Clients     int       `json:"clients"`
	Error       string    `json:"error,omitempty"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ Ошибка при кодировании ответа", zap.Error(err))
	}
}

// writeError: ошибки фильтра -> 400 с текстом, остальные -> 500
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Ошибка при загрузке набора данных"
	if dashboard.IsBadRequest(err) {
		status = http.StatusBadRequest
		message = err.Error()
	} else {
		logger.Error("❌ Ошибка при обработке запроса", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
