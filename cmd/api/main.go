package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/candyland-dev/candyland-backend/api/routes"
	authsvc "github.com/candyland-dev/candyland-backend/internal/auth"
	"github.com/candyland-dev/candyland-backend/internal/catalog"
	"github.com/candyland-dev/candyland-backend/internal/directory"
	"github.com/candyland-dev/candyland-backend/internal/ecommerce"
	"github.com/candyland-dev/candyland-backend/internal/files"
	"github.com/candyland-dev/candyland-backend/internal/invoices"
	"github.com/candyland-dev/candyland-backend/internal/mail"
	"github.com/candyland-dev/candyland-backend/internal/orders"
	"github.com/candyland-dev/candyland-backend/internal/reconcile"
	"github.com/candyland-dev/candyland-backend/pkg/config"
	"github.com/candyland-dev/candyland-backend/pkg/db"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
	"github.com/candyland-dev/candyland-backend/pkg/migrate"
	"github.com/candyland-dev/candyland-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	// The API keeps serving without redis; only login throttling degrades.
	var redisClient *redis.Client
	if client, err := redis.New(context.Background(), cfg.Redis); err != nil {
		logg.Warn(context.Background(), "redis unavailable, login rate limiting disabled")
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	directoryRepo := directory.NewRepository(dbClient.DB())

	directoryService, err := directory.NewService(directoryRepo, dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create directory service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(directoryRepo, directoryRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	engine := reconcile.NewEngine()

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, engine)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	ecommerceService, err := ecommerce.NewService(ecommerce.NewRepository(dbClient.DB()), dbClient, engine, directoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ecommerce service", err)
		os.Exit(1)
	}

	fileStore, err := files.NewStore(cfg.App, cfg.Uploads, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create file store", err)
		os.Exit(1)
	}

	mailer, err := mail.NewMailer(cfg.SMTP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

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
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Registry:  registry,
			Auth:      authService,
			Catalog:   catalogService,
			Directory: directoryService,
			Orders:    ordersService,
			Ecommerce: ecommerceService,
			Files:     fileStore,
			Invoices:  invoices.NewRenderer(""),
			Mailer:    mailer,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
