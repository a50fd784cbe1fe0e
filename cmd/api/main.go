package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanvasquez/threadline-backend/api/routes"
	"github.com/jordanvasquez/threadline-backend/internal/auth"
	"github.com/jordanvasquez/threadline-backend/internal/catalog"
	"github.com/jordanvasquez/threadline-backend/internal/users"
	"github.com/jordanvasquez/threadline-backend/internal/wishlist"
	"github.com/jordanvasquez/threadline-backend/pkg/auth/session"
	"github.com/jordanvasquez/threadline-backend/pkg/config"
	"github.com/jordanvasquez/threadline-backend/pkg/db"
	"github.com/jordanvasquez/threadline-backend/pkg/logger"
	"github.com/jordanvasquez/threadline-backend/pkg/metrics"
	"github.com/jordanvasquez/threadline-backend/pkg/migrate"
	"github.com/jordanvasquez/threadline-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	wishlistRepo := wishlist.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo: catalogRepo,
		DB:   dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		CatalogRepo:  catalogRepo,
		UserRepo:     userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			HTTPMetrics:     httpMetrics,
			MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			DBPinger:        dbClient,
			RedisPinger:     redisClient,
			Sessions:        sessionManager,
			AuthService:     authService,
			CatalogService:  catalogService,
			WishlistService: wishlistService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
