// Package telemetry настраивает экспорт метрик OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/LilVoxy/superstore_dashboard/config"
)

// ShutdownFunc освобождает ресурсы телеметрии
type ShutdownFunc func(context.Context) error

// ExportInterval период выгрузки метрик
var ExportInterval = time.Minute

// Init настраивает глобальный MeterProvider. exporter=none оставляет
// провайдер по умолчанию (метрики не собираются).
func Init(cfg config.TelemetryConfig, version string, w io.Writer) (ShutdownFunc, error) {
	switch cfg.Exporter {
	case "", "none":
		return func(context.Context) error { return nil }, nil
	case "stdout":
	default:
		return nil, fmt.Errorf("неизвестный экспортер телеметрии: %s", cfg.Exporter)
	}

	if w == nil {
		w = os.Stdout
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания ресурса телеметрии: %w", err)
	}

	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания экспортера метрик: %w", err)
	}

	mp := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(ExportInterval))),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}
