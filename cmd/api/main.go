package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hamzasiddiqui/bazaarline-backend/api/routes"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/audit"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/auth"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/categories"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/checkout"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/dashboard"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/orders"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/products"
	"github.com/hamzasiddiqui/bazaarline-backend/internal/users"
	pkgauth "github.com/hamzasiddiqui/bazaarline-backend/pkg/auth"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/cache"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/config"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/db"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/migrate"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/redis"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.AutoRun(context.Background(), cfg, logg); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	usersRepo := users.NewRepository(dbClient.Gorm)
	productsRepo := products.NewRepository(dbClient.Gorm)
	categoriesRepo := categories.NewRepository(dbClient.Gorm)
	ordersRepo := orders.NewRepository(dbClient.Gorm)
	auditRepo := audit.NewRepository(dbClient.Gorm)
	dashboardRepo := dashboard.NewRepository(dbClient.Gorm)

	recorder := audit.NewRecorder(auditRepo, logg)
	store := cache.NewMemoryStore()
	tokens := pkgauth.NewTokenManager(cfg.JWT)
	hasher := security.NewHasher(cfg.Password)

	deps := routes.Dependencies{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Tokens:   tokens,
		Registry: registry,

		AuthService:       auth.NewService(usersRepo, hasher, tokens, logg),
		CheckoutService:   checkout.NewService(usersRepo, productsRepo, dbClient, logg),
		ProductsService:   products.NewService(productsRepo, dbClient, store, recorder),
		CategoriesService: categories.NewService(categoriesRepo, store, recorder),
		OrdersService:     orders.NewService(ordersRepo, dbClient, recorder),
		UsersService:      users.NewService(usersRepo, recorder),
		DashboardService:  dashboard.NewService(dashboardRepo),
		UsersRepo:         usersRepo,
		AuditRepo:         auditRepo,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
