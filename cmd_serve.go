// cmd_serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LilVoxy/superstore_dashboard/dashboard"
	"github.com/LilVoxy/superstore_dashboard/refresh"
	"github.com/LilVoxy/superstore_dashboard/routes"
	"github.com/LilVoxy/superstore_dashboard/telemetry"
	"github.com/LilVoxy/superstore_dashboard/websocket"
)

// shutdownTimeout время на завершение активных запросов
const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить сервер дашборда",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Телеметрия
	shutdownTelemetry, err := telemetry.Init(a.cfg.Telemetry, version, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			a.logger.Warn("⚠️ Ошибка остановки телеметрии", zap.Error(err))
		}
	}()

	metrics, err := telemetry.NewDashboardMetrics()
	if err != nil {
		return err
	}

	// 2. Набор данных; первая загрузка сразу, чтобы ошибки источника были видны при старте
	cache, closeSource, err := a.newCache(ctx, metrics)
	if err != nil {
		return err
	}
	defer closeSource()

	if _, err := cache.Get(ctx); err != nil {
		return fmt.Errorf("не удалось загрузить набор данных: %w", err)
	}

	// 3. Сервис, WebSocket и маршруты
	svc := dashboard.NewService(cache, a.cfg.Dashboard, metrics, a.logger)
	manager := websocket.NewManager(svc, a.cfg.Server.AllowedOrigin, a.logger)

	router := mux.NewRouter()
	routes.SetupRoutes(router, routes.Deps{
		Service:       svc,
		Clients:       manager,
		WebSocket:     manager.HandleConnections,
		AllowedOrigin: a.cfg.Server.AllowedOrigin,
		Logger:        a.logger,
	})

	srv := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		manager.Run(gctx)
		return nil
	})

	// 4. Обновление набора данных
	switch {
	case a.cfg.Dataset.Source == "csv" && a.cfg.Dataset.Watch:
		watcher, err := refresh.NewFileWatcher(a.cfg.Dataset.Path, cache, refresh.DefaultDebounce, a.logger, manager)
		if err != nil {
			return err
		}
		g.Go(func() error { return watcher.Run(gctx) })
	case a.cfg.Dataset.Source == "sql" && a.cfg.Database.RefreshInterval > 0:
		scheduler := refresh.NewScheduler(a.cfg.Database.RefreshInterval, cache, a.logger, manager)
		g.Go(func() error { return scheduler.Run(gctx) })
	}

	g.Go(func() error {
		a.logger.Info("🚀 Сервер запущен", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Получен сигнал завершения, останавливаем сервер...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ошибка при остановке сервера: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("✅ Сервер остановлен")
	return nil
}
