package transform

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/geo"
	"github.com/LilVoxy/superstore_dashboard/models"
)

// Options параметры расчета
type Options struct {
	PreviewRows int
	TopStates   int
	EnableMap   bool
}

// Transformer координирует расчет всех представлений дашборда по отфильтрованному набору
type Transformer struct {
	logger         *zap.Logger
	kpiProcessor   *KPIProcessor
	groupProcessor *GroupProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *zap.Logger) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{
		logger:         logger,
		kpiProcessor:   NewKPIProcessor(),
		groupProcessor: NewGroupProcessor(),
	}
}

// Transform считает метрики, таблицу предпросмотра и данные графиков.
// Поля Title, Request, Selection, Charts и Metadata заполняет вызывающий.
func (t *Transformer) Transform(df dataframe.DataFrame, opts Options) (*models.DashboardData, error) {
	startTime := time.Now()
	data := &models.DashboardData{Rows: df.Nrow()}

	// 1. Метрики
	data.KPIs = t.kpiProcessor.ProcessKPIs(df)
	data.Formatted = FormatKPIs(data.KPIs)

	// 2. Первые строки набора
	data.Preview = Preview(df, opts.PreviewRows)

	// 3. Продажи по категориям
	categories, err := t.groupProcessor.SalesByCategory(df)
	if err != nil {
		return nil, fmt.Errorf("ошибка при расчете продаж по категориям: %w", err)
	}
	data.SalesByCategory = categories

	// 4. Штаты с наибольшей прибылью
	states, err := t.groupProcessor.TopStatesByProfit(df, opts.TopStates)
	if err != nil {
		return nil, fmt.Errorf("ошибка при расчете прибыли по штатам: %w", err)
	}
	data.TopStates = states

	// 5. Динамика продаж
	trend, err := t.groupProcessor.SalesTrend(df)
	if err != nil {
		return nil, fmt.Errorf("ошибка при расчете динамики продаж: %w", err)
	}
	data.SalesTrend = trend

	// 6. Продажи по штатам для карты
	if opts.EnableMap {
		byState, err := t.groupProcessor.SalesByState(df)
		if err != nil {
			return nil, fmt.Errorf("ошибка при расчете продаж по штатам: %w", err)
		}
		data.SalesByState, data.Unmapped = geo.Locate(byState)
		if len(data.Unmapped) > 0 {
			t.logger.Warn("⚠️ Штаты не найдены на карте", zap.Strings("states", data.Unmapped))
		}
	}

	t.logger.Debug("Расчет дашборда завершен",
		zap.Int("rows", data.Rows),
		zap.Duration("duration", time.Since(startTime)))
	return data, nil
}

// Preview первые n строк набора (аналог head)
func Preview(df dataframe.DataFrame, n int) models.Table {
	if n > df.Nrow() {
		n = df.Nrow()
	}
	if n <= 0 {
		return models.Table{Columns: df.Names(), Rows: [][]string{}}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	records := dataset.Records(df.Subset(idx))
	return models.Table{Columns: records[0], Rows: records[1:]}
}
