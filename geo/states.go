// Package geo сопоставляет названия штатов США с почтовыми кодами и
// клетками плиточной карты.
package geo

import (
	"sort"
	"strings"

	"github.com/LilVoxy/superstore_dashboard/models"
)

// State штат и его положение на плиточной карте
type State struct {
	Name string
	Code string
	Row  int
	Col  int
}

// Размер плиточной сетки
const (
	GridRows = 8
	GridCols = 12
)

var states = []State{
	{"Alaska", "AK", 0, 0}, {"Maine", "ME", 0, 11},
	{"Vermont", "VT", 1, 10}, {"New Hampshire", "NH", 1, 11},
	{"Washington", "WA", 2, 1}, {"Idaho", "ID", 2, 2}, {"Montana", "MT", 2, 3}, {"North Dakota", "ND", 2, 4},
	{"Minnesota", "MN", 2, 5}, {"Illinois", "IL", 2, 6}, {"Wisconsin", "WI", 2, 7}, {"Michigan", "MI", 2, 8},
	{"New York", "NY", 2, 9}, {"Rhode Island", "RI", 2, 10}, {"Massachusetts", "MA", 2, 11},
	{"Oregon", "OR", 3, 1}, {"Nevada", "NV", 3, 2}, {"Wyoming", "WY", 3, 3}, {"South Dakota", "SD", 3, 4},
	{"Iowa", "IA", 3, 5}, {"Indiana", "IN", 3, 6}, {"Ohio", "OH", 3, 7}, {"Pennsylvania", "PA", 3, 8},
	{"New Jersey", "NJ", 3, 9}, {"Connecticut", "CT", 3, 10},
	{"California", "CA", 4, 1}, {"Utah", "UT", 4, 2}, {"Colorado", "CO", 4, 3}, {"Nebraska", "NE", 4, 4},
	{"Missouri", "MO", 4, 5}, {"Kentucky", "KY", 4, 6}, {"West Virginia", "WV", 4, 7}, {"Virginia", "VA", 4, 8},
	{"Maryland", "MD", 4, 9}, {"Delaware", "DE", 4, 10},
	{"Arizona", "AZ", 5, 2}, {"New Mexico", "NM", 5, 3}, {"Kansas", "KS", 5, 4}, {"Arkansas", "AR", 5, 5},
	{"Tennessee", "TN", 5, 6}, {"North Carolina", "NC", 5, 7}, {"South Carolina", "SC", 5, 8},
	{"District of Columbia", "DC", 5, 9},
	{"Oklahoma", "OK", 6, 4}, {"Louisiana", "LA", 6, 5}, {"Mississippi", "MS", 6, 6}, {"Alabama", "AL", 6, 7},
	{"Georgia", "GA", 6, 8},
	{"Hawaii", "HI", 7, 0}, {"Texas", "TX", 7, 4}, {"Florida", "FL", 7, 9},
}

var byName = func() map[string]State {
	m := make(map[string]State, len(states))
	for _, s := range states {
		m[strings.ToLower(s.Name)] = s
	}
	return m
}()

// All возвращает все штаты в порядке сетки
func All() []State {
	return append([]State(nil), states...)
}

// Lookup находит штат по названию без учета регистра
func Lookup(name string) (State, bool) {
	s, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Locate добавляет почтовые коды к суммам по штатам. Штаты, которых нет
// в таблице, отбрасываются и возвращаются отдельно (по алфавиту).
func Locate(values []models.GroupValue) ([]models.StateValue, []string) {
	located := make([]models.StateValue, 0, len(values))
	var dropped []string
	for _, v := range values {
		s, ok := Lookup(v.Label)
		if !ok {
			dropped = append(dropped, v.Label)
			continue
		}
		located = append(located, models.StateValue{State: v.Label, Code: s.Code, Value: v.Value})
	}
	sort.Strings(dropped)
	return located, dropped
}
