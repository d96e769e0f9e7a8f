// cmd_export.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/export"
	"github.com/LilVoxy/superstore_dashboard/transform"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		flags filterFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузить отфильтрованные строки в CSV или XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.Dashboard.DownloadName
			}
			ext := strings.ToLower(filepath.Ext(out))
			if ext != ".csv" && ext != ".xlsx" {
				return fmt.Errorf("неподдерживаемое расширение файла выгрузки: %q", ext)
			}

			cache, closeSource, err := a.newCache(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeSource()

			svc := dashboard.NewService(cache, a.cfg.Dashboard, nil, a.logger)
			df, _, err := svc.Filtered(cmd.Context(), flags.request(cmd))
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("ошибка создания файла %s: %w", out, err)
			}
			defer f.Close()

			if ext == ".csv" {
				err = export.WriteCSV(f, df)
			} else {
				kpis := transform.ComputeKPIs(df)
				err = export.WriteXLSX(f, df, kpis, transform.FormatKPIs(kpis))
			}
			if err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("ошибка записи файла %s: %w", out, err)
			}

			a.logger.Info("✅ Выгрузка сохранена", zap.String("path", out), zap.Int("rows", df.Nrow()))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "файл выгрузки (.csv или .xlsx)")
	return cmd
}
