// Package main is the entry point for the voucher top-up API.
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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"voucher-topup-api/internal/cache"
	"voucher-topup-api/internal/config"
	"voucher-topup-api/internal/handler"
	"voucher-topup-api/internal/middleware"
	"voucher-topup-api/internal/pkg/auth"
	"voucher-topup-api/internal/pkg/db"
	"voucher-topup-api/internal/pkg/filestore"
	"voucher-topup-api/internal/pkg/lock"
	"voucher-topup-api/internal/pricing"
	"voucher-topup-api/internal/repository"
	"voucher-topup-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogger(cfg)

	log.Info().Str("env", cfg.App.Env).Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Repositories
	voucherRepo := repository.NewVoucherRepository(dbPool.Pool)
	catalogRepo := repository.NewCatalogRepository(dbPool.Pool)
	playerRepo := repository.NewPlayerRepository(dbPool.Pool)
	txRepo := repository.NewTransactionRepository(dbPool.Pool)

	// A nil *CatalogCache must not reach the service as a non-nil interface.
	var catalogCache service.CatalogCache
	if cfg.Redis.Enabled {
		c, err := cache.NewCatalogCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Catalog cache unavailable, serving from database")
		} else {
			defer c.Close()
			catalogCache = c
		}
	}

	files, err := filestore.New(cfg.App.UploadDir())
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.App.UploadDir()).Msg("Failed to prepare upload directory")
	}

	// Services
	resolver := service.NewResolver(voucherRepo, catalogRepo)
	calculator := pricing.New(cfg.Checkout.TaxPercent)
	catalogService := service.NewCatalogService(voucherRepo, catalogRepo, catalogCache)
	checkoutService := service.NewCheckoutService(resolver, calculator, txRepo, cfg.Checkout.DefaultStatus)
	historyService := service.NewHistoryService(txRepo, catalogRepo)
	profileService := service.NewProfileService(playerRepo, files, lock.NewKeyLock())

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	playerHandler := handler.NewPlayerHandler(catalogService, checkoutService, historyService, profileService, cfg.Server.MaxUploadBytes)
	router := handler.NewRouter(
		playerHandler,
		middleware.Auth(issuer, playerRepo),
		dbPool.HealthCheck,
		middleware.Recovery(),
		middleware.Logger(),
	)
	router.Static("/uploads", cfg.App.UploadDir())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server is starting...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}

// setupLogger applies the configured level and switches to JSON output in production.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Log.Level).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.App.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
