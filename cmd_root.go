// cmd_root.go
package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LilVoxy/superstore_dashboard/config"
	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/logging"
)

// app общее состояние команд: конфигурация и логгер
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "superstore",
		Short: "Superstore sales dashboard",
		Long: `Интерактивный дашборд продаж Superstore.

Читает набор заказов из CSV или SQL-таблицы, фильтрует его по датам,
штатам, категориям, сегментам и годам и показывает метрики и графики.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML-файл конфигурации")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "подробный журнал (уровень debug)")

	root.AddCommand(
		newServeCmd(a),
		newReportCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// openSource создает источник набора данных по конфигурации.
// Для SQL-источника возвращается открытое подключение, его закрывает вызывающий.
func (a *app) openSource(ctx context.Context) (dataset.Source, *sql.DB, error) {
	switch a.cfg.Dataset.Source {
	case "csv":
		return dataset.NewCSVSource(a.cfg.Dataset.Path, a.cfg.Dataset.Encoding), nil, nil
	case "sql":
		db, err := config.ConnectDatabase(ctx, a.cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		src, err := dataset.NewSQLSource(db, a.cfg.Database.Driver, a.cfg.Database.Table)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return src, db, nil
	default:
		return nil, nil, fmt.Errorf("неизвестный источник данных: %q", a.cfg.Dataset.Source)
	}
}

// newCache открывает источник и оборачивает его кэшем
func (a *app) newCache(ctx context.Context, recorder dataset.LoadRecorder) (*dataset.Cache, func(), error) {
	src, db, err := a.openSource(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := []dataset.CacheOption{dataset.WithLogger(a.logger)}
	if a.cfg.Dataset.SnapshotPath != "" {
		opts = append(opts, dataset.WithSnapshot(a.cfg.Dataset.SnapshotPath))
	}
	if recorder != nil {
		opts = append(opts, dataset.WithRecorder(recorder))
	}

	closeFn := func() {
		if db != nil {
			db.Close()
		}
	}
	return dataset.NewCache(src, opts...), closeFn, nil
}
