package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"urlboard/internal/allowlist"
	"urlboard/internal/config"
	"urlboard/internal/db"
	"urlboard/internal/events"
	"urlboard/internal/handler"
	router "urlboard/internal/http"
	"urlboard/internal/repository"
	"urlboard/internal/service"
	"urlboard/internal/stores"
	"urlboard/internal/web"
	"urlboard/pkg/logger"
	"urlboard/pkg/network"
	"urlboard/pkg/snowflake"
)

const (
	shutdownTimeout = 10 * time.Second

	// proxyCheckURL answers 204 without a body; used to verify the
	// configured outbound proxy before deliveries depend on it.
	proxyCheckURL = "https://www.gstatic.com/generate_204"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.NodeID); err != nil {
		logger.Error("init snowflake failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("create data dir failed", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database failed", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	recordRepo := repository.NewRecordRepository(database)
	storeRepo := repository.NewStoreRepository(database)

	var publisher events.Publisher
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.Error("connect to nats failed", "url", cfg.NATSURL, "error", err)
			os.Exit(1)
		}
		publisher = natsPublisher
		logger.Info("event publishing enabled", "url", cfg.NATSURL)
	} else {
		publisher = &events.NoopPublisher{}
	}
	defer publisher.Close()

	clients := network.NewClientFactory(
		&network.StaticProvider{ProxyURL: cfg.OutboundProxy, IPStack: cfg.IPStack},
		&network.StaticProvider{ProxyURL: cfg.OutboundProxy, IPStack: cfg.IPStack},
	)

	if cfg.OutboundProxy != "" {
		checkCtx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		if err := clients.TestProxy(checkCtx, proxyCheckURL); err != nil {
			logger.Warn("outbound proxy check failed", "proxy", cfg.OutboundProxy, "error", err)
		} else {
			logger.Info("outbound proxy reachable", "proxy", cfg.OutboundProxy)
		}
		cancel()
	}

	notifier := stores.NewFanoutNotifier(storeRepo, clients, stores.Config{
		Timeout:       cfg.StoreTimeout,
		Concurrency:   cfg.StoreConcurrency,
		RatePerMinute: cfg.StoreRateLimit,
	})

	allowed := allowlist.Parse(cfg.AllowedURLKeys)
	logger.Info("allow-list loaded", "keys", allowed.Entries())

	recordService := service.NewRecordService(recordRepo, notifier, publisher, allowed)
	storeService := service.NewStoreService(storeRepo, notifier, publisher)

	e := router.NewRouter(
		handler.NewRecordHandler(recordService),
		handler.NewStoreHandler(storeService),
		web.NewDashboardHandler(recordService, allowed.Entries()),
		cfg.SwaggerEnabled,
	)

	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
