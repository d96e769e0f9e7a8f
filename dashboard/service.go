package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/charts"
	"github.com/LilVoxy/superstore_dashboard/config"
	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/models"
	"github.com/LilVoxy/superstore_dashboard/transform"
)

// Имена отдельных графиков для /charts/{name}.svg
const (
	ChartCategory = "category"
	ChartStates   = "states"
	ChartTrend    = "trend"
	ChartMap      = "map"
)

// ErrUnknownChart запрошен график, которого нет
var ErrUnknownChart = errors.New("неизвестный график")

// RenderRecorder получает длительность и результат каждого расчета
type RenderRecorder interface {
	RecordRender(ctx context.Context, kind string, d time.Duration, err error)
}

// Service связывает кэш набора данных, фильтр, расчет и графики
type Service struct {
	cache       *dataset.Cache
	transformer *transform.Transformer
	charts      *charts.Renderer
	cfg         config.DashboardConfig
	metrics     RenderRecorder
	logger      *zap.Logger
}

// NewService создает новый экземпляр Service
func NewService(cache *dataset.Cache, cfg config.DashboardConfig, metrics RenderRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:       cache,
		transformer: transform.NewTransformer(logger),
		charts:      charts.NewRenderer(logger),
		cfg:         cfg,
		metrics:     metrics,
		logger:      logger,
	}
}

// Config настройки страницы
func (s *Service) Config() config.DashboardConfig {
	return s.cfg
}

// Cache кэш набора данных
func (s *Service) Cache() *dataset.Cache {
	return s.cache
}

// Options значения для виджетов фильтра
func (s *Service) Options(ctx context.Context) (filter.Options, error) {
	df, err := s.cache.Get(ctx)
	if err != nil {
		return filter.Options{}, err
	}
	opts := filter.OptionsOf(df)
	if !s.cfg.EnableYearFilter {
		opts.Years = nil
	}
	return opts, nil
}

// Filtered возвращает отфильтрованный набор и разрешенный фильтр
func (s *Service) Filtered(ctx context.Context, req filter.Request) (dataframe.DataFrame, filter.Selection, error) {
	df, err := s.cache.Get(ctx)
	if err != nil {
		return dataframe.DataFrame{}, filter.Selection{}, err
	}

	if !s.cfg.EnableYearFilter {
		req.Years = nil
	}
	sel, err := filter.Resolve(req, filter.OptionsOf(df))
	if err != nil {
		return dataframe.DataFrame{}, filter.Selection{}, err
	}
	if !s.cfg.EnableYearFilter {
		sel.Years = nil
	}
	return filter.Apply(df, sel), sel, nil
}

// Build полностью пересчитывает дашборд для запроса, включая SVG-графики
func (s *Service) Build(ctx context.Context, req filter.Request) (data *models.DashboardData, err error) {
	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordRender(ctx, "dashboard", time.Since(startTime), err)
		}
	}()

	df, sel, err := s.Filtered(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err = s.transformer.Transform(df, transform.Options{
		PreviewRows: s.cfg.PreviewRows,
		TopStates:   s.cfg.TopStates,
		EnableMap:   s.cfg.EnableMap,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка расчета дашборда: %w", err)
	}

	data.Title = s.cfg.Title
	data.Request = req
	data.Selection = sel
	data.Charts = models.Charts{
		Category: s.charts.CategoryBar(data.SalesByCategory),
		States:   s.charts.TopStatesBar(data.TopStates),
		Trend:    s.charts.SalesTrendLine(data.SalesTrend),
	}
	if s.cfg.EnableMap {
		data.Charts.Map = s.charts.Choropleth(data.SalesByState)
	}

	info := s.cache.Info()
	data.Metadata = models.Metadata{
		GeneratedAt: time.Now(),
		Source:      info.Source,
		Fingerprint: info.Fingerprint,
		Duration:    time.Since(startTime),
		MapEnabled:  s.cfg.EnableMap,
		YearFilter:  s.cfg.EnableYearFilter,
	}
	return data, nil
}

// Chart строит один график по имени
func (s *Service) Chart(ctx context.Context, name string, req filter.Request) (string, error) {
	switch name {
	case ChartCategory, ChartStates, ChartTrend:
	case ChartMap:
		if !s.cfg.EnableMap {
			return "", fmt.Errorf("%w: %s", ErrUnknownChart, name)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}

	data, err := s.Build(ctx, req)
	if err != nil {
		return "", err
	}
	switch name {
	case ChartCategory:
		return data.Charts.Category, nil
	case ChartStates:
		return data.Charts.States, nil
	case ChartTrend:
		return data.Charts.Trend, nil
	default:
		return data.Charts.Map, nil
	}
}

// IsBadRequest ошибка вызвана некорректным запросом клиента
func IsBadRequest(err error) bool {
	return errors.Is(err, filter.ErrInvalidRange) ||
		errors.Is(err, filter.ErrInvalidValue) ||
		errors.Is(err, ErrUnknownChart)
}
