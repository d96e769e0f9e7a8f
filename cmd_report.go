// cmd_report.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/filter"
	"github.com/LilVoxy/superstore_dashboard/report"
)

// filterFlags флаги фильтра, общие для report и export
type filterFlags struct {
	start, end                   string
	states, categories, segments []string
	years                        []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.start, filter.ParamStart, "", "начальная дата (YYYY-MM-DD)")
	flags.StringVar(&f.end, filter.ParamEnd, "", "конечная дата (YYYY-MM-DD)")
	flags.StringSliceVar(&f.states, filter.ParamState, nil, "штаты")
	flags.StringSliceVar(&f.categories, filter.ParamCategory, nil, "категории")
	flags.StringSliceVar(&f.segments, filter.ParamSegment, nil, "сегменты")
	flags.StringSliceVar(&f.years, filter.ParamYear, nil, "годы")
}

// request собирает запрос фильтра; не указанный флаг означает все значения,
// а указанный с пустым значением - ничего не выбрано
func (f *filterFlags) request(cmd *cobra.Command) filter.Request {
	req := filter.Request{Start: f.start, End: f.end}
	list := func(name string, values []string) []string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		if values == nil {
			return []string{}
		}
		return values
	}
	req.States = list(filter.ParamState, f.states)
	req.Categories = list(filter.ParamCategory, f.categories)
	req.Segments = list(filter.ParamSegment, f.segments)
	req.Years = list(filter.ParamYear, f.years)
	return req
}

func newReportCmd(a *app) *cobra.Command {
	var (
		flags  filterFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Рассчитать дашборд и вывести его в терминал",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, closeSource, err := a.newCache(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeSource()

			svc := dashboard.NewService(cache, a.cfg.Dashboard, nil, a.logger)
			data, err := svc.Build(cmd.Context(), flags.request(cmd))
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), format, data)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "формат вывода: text, json, yaml")
	return cmd
}
