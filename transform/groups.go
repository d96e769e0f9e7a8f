package transform

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/models"
)

// GroupProcessor отвечает за группировки, которые передаются в графики
type GroupProcessor struct{}

// NewGroupProcessor создает новый экземпляр GroupProcessor
func NewGroupProcessor() *GroupProcessor {
	return &GroupProcessor{}
}

// SalesByCategory сумма продаж по категориям, категории по возрастанию
func (p *GroupProcessor) SalesByCategory(df dataframe.DataFrame) ([]models.GroupValue, error) {
	out, err := SumBy(df, dataset.Category, dataset.Sales)
	if err != nil {
		return nil, err
	}
	sortByLabel(out)
	return out, nil
}

// TopStatesByProfit первые n штатов по убыванию суммарной прибыли
func (p *GroupProcessor) TopStatesByProfit(df dataframe.DataFrame, n int) ([]models.GroupValue, error) {
	out, err := SumBy(df, dataset.State, dataset.Profit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// SalesTrend сумма продаж по датам заказа в порядке возрастания даты
func (p *GroupProcessor) SalesTrend(df dataframe.DataFrame) ([]models.GroupValue, error) {
	out, err := SumBy(df, dataset.OrderDate, dataset.Sales)
	if err != nil {
		return nil, err
	}
	sortByLabel(out)
	return out, nil
}

// SalesByState сумма продаж по штатам, штаты по алфавиту
func (p *GroupProcessor) SalesByState(df dataframe.DataFrame) ([]models.GroupValue, error) {
	out, err := SumBy(df, dataset.State, dataset.Sales)
	if err != nil {
		return nil, err
	}
	sortByLabel(out)
	return out, nil
}

// SumBy группирует по колонке key и суммирует колонку value.
// Порядок результата не определен.
func SumBy(df dataframe.DataFrame, key, value string) ([]models.GroupValue, error) {
	if df.Nrow() == 0 {
		return []models.GroupValue{}, nil
	}

	narrow := df.Select([]string{key, value})
	if narrow.Err != nil {
		return nil, fmt.Errorf("ошибка выбора колонок %s, %s: %w", key, value, narrow.Err)
	}
	groups := narrow.GroupBy(key)
	if groups.Err != nil {
		return nil, fmt.Errorf("ошибка группировки по %s: %w", key, groups.Err)
	}

	out := make([]models.GroupValue, 0)
	for _, g := range groups.GetGroups() {
		if g.Nrow() == 0 {
			continue
		}
		out = append(out, models.GroupValue{
			Label: g.Col(key).Elem(0).String(),
			Value: sum(g.Col(value).Float()).InexactFloat64(),
		})
	}
	return out, nil
}

func sortByLabel(values []models.GroupValue) {
	sort.Slice(values, func(i, j int) bool {
		return values[i].Label < values[j].Label
	})
}
