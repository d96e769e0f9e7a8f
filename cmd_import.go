// cmd_import.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LilVoxy/superstore_dashboard/config"
	"github.com/LilVoxy/superstore_dashboard/dataset"
)

func newImportCmd(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Загрузить CSV-файл заказов в SQL-таблицу",
		Long: `Читает CSV-файл заказов и полностью заменяет содержимое таблицы database.table.
После импорта сервер можно запускать с dataset.source=sql.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = a.cfg.Dataset.Path
			}

			df, err := dataset.NewCSVSource(path, a.cfg.Dataset.Encoding).Load(cmd.Context())
			if err != nil {
				return err
			}

			db, err := config.ConnectDatabase(cmd.Context(), a.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := dataset.Import(cmd.Context(), db, a.cfg.Database.Driver, a.cfg.Database.Table, df, a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Импортировано строк: %d\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "csv", "", "CSV-файл (по умолчанию dataset.path)")
	return cmd
}
