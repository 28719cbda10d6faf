package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/cartstore"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/httpserver"
	"storefront/internal/identity"
	"storefront/internal/telemetry"
	accountrepo "storefront/internal/repository/account"
	categoryrepo "storefront/internal/repository/category"
	logisticsrepo "storefront/internal/repository/logistics"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	tokenrepo "storefront/internal/repository/token"
	accountsvc "storefront/internal/service/account"
	categorysvc "storefront/internal/service/category"
	dashboardsvc "storefront/internal/service/dashboard"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	policy, err := domain.StatusPolicyByName(cfg.StatusPolicy)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	tracing := telemetry.Settings{ServiceName: cfg.ServiceName, Endpoint: cfg.OTLPEndpoint}
	if cfg.TraceStdout {
		tracing.Stdout = os.Stdout
	}
	tp, err := telemetry.Setup(ctx, tracing, logger)
	if err != nil {
		logger.Fatalf("init tracing: %v", err)
	}

	dbpool, err := db.ConnectWith(ctx, cfg.DBConnString, db.PoolOptions{MaxConns: int32(cfg.DBMaxConns)})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var storage cartstore.Storage = cartstore.NewMemoryStorage()
	if cfg.RedisURL != "" {
		client, err := cartstore.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer client.Close()
		storage = cartstore.NewRedisStorage(client, cfg.CartTTL)
	} else {
		logger.Printf("REDIS_URL not set, carts are kept in memory")
	}
	carts := cartstore.New(storage, logger)

	orderRepo := orderrepo.NewGuarded(orderrepo.NewPostgres(dbpool, logger), orderrepo.BreakerSettings{
		MaxFailures: cfg.BreakerFailures,
		OpenFor:     cfg.BreakerOpen,
	}, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	logisticsRepo := logisticsrepo.NewPostgres(dbpool, logger)
	accountService := accountsvc.New(accountrepo.NewPostgres(dbpool, logger), tokenrepo.NewPostgres(dbpool))

	scope := domain.OrderScope(cfg.OrderScope)
	orderService := ordersvc.New(orderRepo, carts, identity.ContextProvider{}, ordersvc.Options{
		Policy:  policy,
		Scope:   scope,
		Timeout: cfg.StoreTimeout,
		Logger:  logger,
	})
	dashboardService := dashboardsvc.New(orderRepo, logisticsRepo, scope, cfg.StoreTimeout)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AccountSvc:   accountService,
		ProductSvc:   productsvc.New(productRepo),
		CategorySvc:  categorysvc.New(categoryRepo),
		Carts:        carts,
		OrderSvc:     orderService,
		DashboardSvc: dashboardService,
		CartTTL:      cfg.CartTTL,
		CORSOrigins:  cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (order scope %s, status policy %s)", cfg.HTTPAddr, cfg.OrderScope, cfg.StatusPolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Printf("flush traces: %v", err)
		}
	}
}
