package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wayplan/wayplan-backend/config"
	"github.com/wayplan/wayplan-backend/handlers"
	internaldb "github.com/wayplan/wayplan-backend/internal/db"
	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/models/activity"
	"github.com/wayplan/wayplan-backend/models/trip"
	"github.com/wayplan/wayplan-backend/router"
	"github.com/wayplan/wayplan-backend/services"
	"github.com/wayplan/wayplan-backend/store/postgres"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := internaldb.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	}
	if cfg.IsProduction() {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		if cfg.IsProduction() {
			redisOptions.TLSConfig = &tls.Config{
				ServerName: cfg.Redis.Address,
				MinVersion: tls.VersionTLS12,
			}
		}
		redisClient = redis.NewClient(redisOptions)
		defer redisClient.Close()
	}

	dataStore := postgres.NewStore(pool)
	currencyService := services.NewCurrencyService(cfg.ExternalServices.RatesBaseURL, redisClient, time.Now)
	placeService := services.NewPlaceService(cfg.ExternalServices.PlacesBaseURL)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	tripModel := trip.NewTripModel(dataStore, currencyService)
	activityModel := activity.NewActivityModel(dataStore)

	engine := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		TripHandler:     handlers.NewTripHandler(tripModel),
		ActivityHandler: handlers.NewActivityHandler(activityModel),
		ExportHandler:   handlers.NewExportHandler(tripModel),
		ImportHandler:   handlers.NewImportHandler(tripModel, activityModel),
		CurrencyHandler: handlers.NewCurrencyHandler(currencyService),
		PlaceHandler:    handlers.NewPlaceHandler(placeService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Forced shutdown", "error", err)
	}
	log.Info("Server stopped")
}
