// filter/request.go
package filter

import (
	"net/url"
	"strconv"
)

// Параметры строки запроса
const (
	ParamStart    = "start"
	ParamEnd      = "end"
	ParamState    = "state"
	ParamCategory = "category"
	ParamSegment  = "segment"
	ParamYear     = "year"
)

// Request состояние виджетов фильтра в том виде, в каком оно приходит от клиента.
// Список nil означает значение виджета по умолчанию (все значения),
// пустой список означает, что ничего не выбрано. Пустая дата это граница набора.
type Request struct {
	Start      string   `json:"start,omitempty" yaml:"start,omitempty"`
	End        string   `json:"end,omitempty" yaml:"end,omitempty"`
	States     []string `json:"states" yaml:"states"`
	Categories []string `json:"categories" yaml:"categories"`
	Segments   []string `json:"segments" yaml:"segments"`
	Years      []string `json:"years" yaml:"years"`
}

// ParseQuery читает Request из строки запроса
func ParseQuery(q url.Values) Request {
	return Request{
		Start:      q.Get(ParamStart),
		End:        q.Get(ParamEnd),
		States:     listParam(q, ParamState),
		Categories: listParam(q, ParamCategory),
		Segments:   listParam(q, ParamSegment),
		Years:      listParam(q, ParamYear),
	}
}

// listParam: параметра нет - nil; параметр есть, но все значения пустые - пустой список
func listParam(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Query обратное преобразование для ссылок на выгрузку
func (r Request) Query() url.Values {
	q := url.Values{}
	if r.Start != "" {
		q.Set(ParamStart, r.Start)
	}
	if r.End != "" {
		q.Set(ParamEnd, r.End)
	}
	setList(q, ParamState, r.States)
	setList(q, ParamCategory, r.Categories)
	setList(q, ParamSegment, r.Segments)
	setList(q, ParamYear, r.Years)
	return q
}

func setList(q url.Values, key string, values []string) {
	if values == nil {
		return
	}
	if len(values) == 0 {
		q[key] = []string{""}
		return
	}
	q[key] = append([]string(nil), values...)
}

// YearsOf переводит годы в строковую форму Request
func YearsOf(years []int) []string {
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = strconv.Itoa(y)
	}
	return out
}
