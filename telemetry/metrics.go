package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "superstore/dashboard"

// DashboardMetrics счетчики расчетов дашборда и загрузок набора данных.
// Методы безопасно вызывать у nil.
type DashboardMetrics struct {
	renders        metric.Int64Counter
	renderErrors   metric.Int64Counter
	renderDuration metric.Float64Histogram
	loads          metric.Int64Counter
	loadErrors     metric.Int64Counter
	loadedRows     metric.Int64Gauge
}

// NewDashboardMetrics создает метрики на глобальном MeterProvider
func NewDashboardMetrics() (*DashboardMetrics, error) {
	return NewDashboardMetricsWithProvider(otel.GetMeterProvider())
}

// NewDashboardMetricsWithProvider создает метрики на указанном провайдере
func NewDashboardMetricsWithProvider(mp metric.MeterProvider) (*DashboardMetrics, error) {
	meter := mp.Meter(meterName)

	renders, err := meter.Int64Counter(
		"superstore.dashboard.renders",
		metric.WithDescription("Dashboard computations by kind"),
	)
	if err != nil {
		return nil, err
	}

	renderErrors, err := meter.Int64Counter(
		"superstore.dashboard.render_errors",
		metric.WithDescription("Failed dashboard computations by kind"),
	)
	if err != nil {
		return nil, err
	}

	renderDuration, err := meter.Float64Histogram(
		"superstore.dashboard.render_duration",
		metric.WithDescription("Dashboard computation time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	loads, err := meter.Int64Counter(
		"superstore.dataset.loads",
		metric.WithDescription("Dataset loads by source"),
	)
	if err != nil {
		return nil, err
	}

	loadErrors, err := meter.Int64Counter(
		"superstore.dataset.load_errors",
		metric.WithDescription("Failed dataset loads by source"),
	)
	if err != nil {
		return nil, err
	}

	loadedRows, err := meter.Int64Gauge(
		"superstore.dataset.rows",
		metric.WithDescription("Rows in the last loaded dataset"),
	)
	if err != nil {
		return nil, err
	}

	return &DashboardMetrics{
		renders:        renders,
		renderErrors:   renderErrors,
		renderDuration: renderDuration,
		loads:          loads,
		loadErrors:     loadErrors,
		loadedRows:     loadedRows,
	}, nil
}

// RecordRender учитывает один расчет дашборда (kind: page, api, ws, report)
func (m *DashboardMetrics) RecordRender(ctx context.Context, kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	m.renders.Add(ctx, 1, attrs)
	m.renderDuration.Record(ctx, float64(d)/float64(time.Millisecond), attrs)
	if err != nil {
		m.renderErrors.Add(ctx, 1, attrs)
	}
}

// RecordLoad учитывает загрузку набора данных
func (m *DashboardMetrics) RecordLoad(ctx context.Context, source string, rows int, d time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("source", source))
	m.loads.Add(ctx, 1, attrs)
	if err != nil {
		m.loadErrors.Add(ctx, 1, attrs)
		return
	}
	m.loadedRows.Record(ctx, int64(rows), attrs)
}
