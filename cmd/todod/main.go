// todod is the todo service daemon: a CRUD REST API for todo items over
// a pooled SQL datastore (sqlite single-file by default, postgres
// optionally).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fluxorio/todo-service/pkg/config"
	"github.com/fluxorio/todo-service/pkg/core"
	"github.com/fluxorio/todo-service/pkg/db"
	"github.com/fluxorio/todo-service/pkg/health"
	"github.com/fluxorio/todo-service/pkg/observability/prometheus"
	"github.com/fluxorio/todo-service/pkg/todo"
	"github.com/fluxorio/todo-service/pkg/web"
	"github.com/fluxorio/todo-service/pkg/web/middleware"
)

func main() {
	logger := core.NewDefaultLogger()

	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(db.PoolConfig{
		DSN:             cfg.Database.DSN,
		DriverName:      cfg.Database.Driver,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime.Std(),
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime.Std(),
	})
	if err != nil {
		logger.Errorf("failed to create database pool: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Errorf("failed to ensure schema: %v", err)
		os.Exit(1)
	}

	prometheus.StartPoolStatsCollector(ctx, pool, 5*time.Second)

	router := web.NewRouter(logger)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.AccessLog(logger))
	router.Use(prometheus.HTTPMetricsMiddleware())

	service := todo.NewService(pool)
	handler := todo.NewHandler(service, logger)
	handler.RegisterRoutes(router)

	health.NewHandler(pool).RegisterRoutes(router)

	prometheus.RegisterMetricsEndpoint(router, "/metrics")

	server := web.NewServer(web.ServerConfig{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		Concurrency:  cfg.Server.Concurrency,
	}, router, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("received %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
}
